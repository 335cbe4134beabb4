// Package config loads the leaderboard plugin configuration and process environment.
package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/j0nas500/statsembed/pkg/discord"
	"github.com/j0nas500/statsembed/pkg/report"
	"github.com/j0nas500/statsembed/pkg/storage"
)

const (
	DefaultPath     = "config.toml"
	DefaultInterval = 5

	IdentityStoreFile  = "file"
	IdentityStoreRedis = "redis"
)

type Config struct {
	Enabled       bool     `toml:"enabled"`
	Guild         string   `toml:"guild"`
	Channel       string   `toml:"channel"`
	StatsTable    string   `toml:"statsTable"`
	PlayersTable  string   `toml:"playersTable"`
	IgnoreList    []string `toml:"ignoreList"`
	MessageID     string   `toml:"messageID"`
	Interval      int      `toml:"interval"`
	IdentityStore string   `toml:"identityStore"`
	Embed         Embed    `toml:"embed"`
}

type Embed struct {
	Title        string `toml:"title"`
	Color        Color  `toml:"color"`
	Footer       string `toml:"footer"`
	Thumbnail    bool   `toml:"thumbnail"`
	ThumbnailURL string `toml:"thumbnailURL"`
}

// Color keeps the raw configured value; both `color = "#FFA500"` and `color = 16753920` are accepted.
type Color string

func (c *Color) UnmarshalTOML(v interface{}) error {
	switch val := v.(type) {
	case string:
		*c = Color(val)
	case int64:
		*c = Color(strconv.FormatInt(val, 10))
	default:
		return fmt.Errorf("color must be a string or an integer, got %T", v)
	}
	return nil
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, invalid("", "unable to read "+path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	if c.IdentityStore == "" {
		c.IdentityStore = IdentityStoreFile
	}
	if c.Embed.Title == "" {
		c.Embed.Title = report.DefaultTitle
	}
}

// Validate fills in defaults, normalizes the channel id and returns the first problem found
// as a *ConfigurationError.
func (c *Config) Validate() error {
	c.applyDefaults()
	if !c.Enabled {
		return invalid("enabled", "the stats leaderboard is disabled", nil)
	}
	if c.Channel == "" {
		return invalid("channel", "no channel configured", nil)
	}
	channelID, err := discord.ParseChannelID(c.Channel)
	if err != nil {
		return invalid("channel", "invalid channel id", err)
	}
	c.Channel = channelID

	if c.Guild == "" {
		return invalid("guild", "no guild configured", nil)
	}
	if err := discord.ValidateSnowflake(c.Guild); err != nil {
		return invalid("guild", "invalid guild id", err)
	}
	if c.MessageID != "" {
		if err := discord.ValidateSnowflake(c.MessageID); err != nil {
			return invalid("messageID", "invalid message id", err)
		}
	}
	if c.StatsTable == "" {
		return invalid("statsTable", "no stats table configured", nil)
	}
	if c.PlayersTable == "" {
		return invalid("playersTable", "no players table configured", nil)
	}
	if c.Interval < 0 {
		return invalid("interval", "must be a positive number of minutes", nil)
	}
	if _, err := report.ParseColor(string(c.Embed.Color)); err != nil {
		return invalid("embed.color", "invalid color", err)
	}
	switch c.IdentityStore {
	case IdentityStoreFile, IdentityStoreRedis:
	default:
		return invalid("identityStore", fmt.Sprintf("unknown store %q (expected %q or %q)", c.IdentityStore, IdentityStoreFile, IdentityStoreRedis), nil)
	}
	return nil
}

func (c *Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Minute
}

func (c *Config) IgnoreSet() storage.IgnoreSet {
	return storage.NewIgnoreSet(c.IgnoreList)
}

// Decoration assumes Validate already accepted the color. An empty color yields
// report.DefaultColor; any configured value, black included, is used as is.
func (c *Config) Decoration() report.Decoration {
	color, _ := report.ParseColor(string(c.Embed.Color))
	return report.Decoration{
		Title:        c.Embed.Title,
		Color:        color,
		Footer:       c.Embed.Footer,
		Thumbnail:    c.Embed.Thumbnail,
		ThumbnailURL: c.Embed.ThumbnailURL,
	}
}
