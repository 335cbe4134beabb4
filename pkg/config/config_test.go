package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/j0nas500/statsembed/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	c := Config{
		Enabled:      true,
		Guild:        "141082723635691520",
		Channel:      "754465589958803548",
		StatsTable:   "player_stats",
		PlayersTable: "players",
	}
	return c
}

func TestLoad(t *testing.T) {
	c, err := Load("testdata/valid.toml")
	require.NoError(t, err)

	assert.Equal(t, "754465589958803548", c.Channel)
	assert.Equal(t, 10*time.Minute, c.IntervalDuration())
	assert.Equal(t, IdentityStoreFile, c.IdentityStore)
	assert.True(t, c.IgnoreSet().Contains("76561198000000002"))
	assert.Equal(t, report.Decoration{
		Title:        "Server Stats",
		Color:        0x00FF00,
		Footer:       "Updated every 10 minutes",
		Thumbnail:    true,
		ThumbnailURL: "https://example.com/logo.png",
	}, c.Decoration())
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load("testdata/nope.toml")
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDefaults(t *testing.T) {
	c := validConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, 5*time.Minute, c.IntervalDuration())
	assert.Equal(t, report.DefaultTitle, c.Decoration().Title)
	assert.Equal(t, report.DefaultColor, c.Decoration().Color)
}

func TestValidate_appliesDefaults(t *testing.T) {
	c := validConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, IdentityStoreFile, c.IdentityStore)
	assert.Equal(t, DefaultInterval, c.Interval)
	assert.Equal(t, report.DefaultTitle, c.Embed.Title)
}

func TestDecoration_black(t *testing.T) {
	c := validConfig()
	c.Embed.Color = "#000000"
	require.NoError(t, c.Validate())
	assert.Equal(t, 0, c.Decoration().Color)
}

func TestColor_integer(t *testing.T) {
	var c Config
	_, err := toml.Decode("[embed]\ncolor = 16753920\n", &c)
	require.NoError(t, err)
	assert.Equal(t, Color("16753920"), c.Embed.Color)

	_, err = toml.Decode("[embed]\ncolor = true\n", &c)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"enabled":       func(c *Config) { c.Enabled = false },
		"channel":       func(c *Config) { c.Channel = "" },
		"guild":         func(c *Config) { c.Guild = "abc" },
		"messageID":     func(c *Config) { c.MessageID = "12" },
		"statsTable":    func(c *Config) { c.StatsTable = "" },
		"playersTable":  func(c *Config) { c.PlayersTable = "" },
		"interval":      func(c *Config) { c.Interval = -1 },
		"embed.color":   func(c *Config) { c.Embed.Color = "orange" },
		"identityStore": func(c *Config) { c.IdentityStore = "s3" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			c := validConfig()
			mutate(&c)
			err := c.Validate()
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, field, cfgErr.Field)
		})
	}
}

func TestFileIdentityStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "config.toml")
	src, err := os.ReadFile("testdata/valid.toml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, src, 0o640))

	store := NewFileIdentityStore(path)
	id, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, store.Save(ctx, "1100000000000000000"))
	id, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1100000000000000000", id)

	// the rest of the file survives the rewrite
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1100000000000000000", c.MessageID)
	assert.Equal(t, "Server Stats", c.Embed.Title)
	assert.Equal(t, []string{"76561198000000001", "76561198000000002"}, c.IgnoreList)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileIdentityStore_missingFile(t *testing.T) {
	store := NewFileIdentityStore(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, store.Save(context.Background(), "1100000000000000000"))
}

func TestEnv(t *testing.T) {
	t.Setenv("POSTGRES_ADDR", "localhost:5432")
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("LOG_PATH", "")
	t.Setenv("DISABLE_LOG_FILE", "1")
	env := EnvFromOS()
	assert.Equal(t, "./", env.LogPath)
	assert.True(t, env.DisableLogFile)
	assert.EqualError(t, env.RequirePostgres(), "no POSTGRES_USER specified; exiting")

	t.Setenv("DISCORD_BOT_TOKEN", "")
	assert.Error(t, EnvFromOS().RequireDiscord())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STATSEMBED_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("STATSEMBED_TEST_VALUE", "")
	os.Unsetenv("STATSEMBED_TEST_VALUE")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env"), path))
	assert.Equal(t, "from-file", os.Getenv("STATSEMBED_TEST_VALUE"))
	require.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env")))
}
