// Package discordtest provides an in-memory discord.Platform for tests.
package discordtest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Platform records every call and serves guilds, channels and messages from memory.
type Platform struct {
	lock sync.Mutex

	Guilds      map[string]*discordgo.Guild
	Channels    map[string]*discordgo.Channel
	Permissions map[string]int64
	Messages    map[string]*discordgo.Message

	PermissionsErr error
	SendErr        error
	EditErr        error

	Fetches int
	Sends   int
	Edits   int
	nextID  int
}

func NewPlatform() *Platform {
	return &Platform{
		Guilds:      map[string]*discordgo.Guild{},
		Channels:    map[string]*discordgo.Channel{},
		Permissions: map[string]int64{},
		Messages:    map[string]*discordgo.Message{},
		nextID:      900000000000000000,
	}
}

// AddTextChannel registers a guild and a text channel the bot has full rights on.
func (p *Platform) AddTextChannel(guildID, channelID string) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Guilds[guildID] = &discordgo.Guild{ID: guildID}
	p.Channels[channelID] = &discordgo.Channel{ID: channelID, GuildID: guildID, Type: discordgo.ChannelTypeGuildText}
	p.Permissions[channelID] = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionEmbedLinks
}

// Delete removes a message as if a moderator deleted it.
func (p *Platform) Delete(messageID string) {
	p.lock.Lock()
	defer p.lock.Unlock()
	delete(p.Messages, messageID)
}

func (p *Platform) Message(messageID string) *discordgo.Message {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.Messages[messageID]
}

func (p *Platform) Counts() (fetches, sends, edits int) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.Fetches, p.Sends, p.Edits
}

func (p *Platform) Guild(_ context.Context, guildID string) (*discordgo.Guild, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	g, ok := p.Guilds[guildID]
	if !ok {
		return nil, notFound(discordgo.ErrCodeUnknownGuild, "Unknown Guild")
	}
	return g, nil
}

func (p *Platform) Channel(_ context.Context, channelID string) (*discordgo.Channel, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	c, ok := p.Channels[channelID]
	if !ok {
		return nil, notFound(discordgo.ErrCodeUnknownChannel, "Unknown Channel")
	}
	return c, nil
}

func (p *Platform) BotPermissions(_ context.Context, channelID string) (int64, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.PermissionsErr != nil {
		return 0, p.PermissionsErr
	}
	return p.Permissions[channelID], nil
}

func (p *Platform) ChannelMessage(_ context.Context, channelID, messageID string) (*discordgo.Message, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Fetches++
	m, ok := p.Messages[messageID]
	if !ok || m.ChannelID != channelID {
		return nil, notFound(discordgo.ErrCodeUnknownMessage, "Unknown Message")
	}
	return m, nil
}

func (p *Platform) ChannelMessageSendEmbed(_ context.Context, channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Sends++
	if p.SendErr != nil {
		return nil, p.SendErr
	}
	p.nextID++
	m := &discordgo.Message{
		ID:        strconv.Itoa(p.nextID),
		ChannelID: channelID,
		Embeds:    []*discordgo.MessageEmbed{embed},
	}
	p.Messages[m.ID] = m
	return m, nil
}

func (p *Platform) ChannelMessageEditEmbed(_ context.Context, channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Edits++
	if p.EditErr != nil {
		return nil, p.EditErr
	}
	m, ok := p.Messages[messageID]
	if !ok || m.ChannelID != channelID {
		return nil, notFound(discordgo.ErrCodeUnknownMessage, "Unknown Message")
	}
	m.Embeds = []*discordgo.MessageEmbed{embed}
	return m, nil
}

func notFound(code int, msg string) error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound, Status: fmt.Sprintf("%d Not Found", http.StatusNotFound)},
		Message:  &discordgo.APIErrorMessage{Code: code, Message: msg},
	}
}

// IdentityStore is an in-memory discord.IdentityStore.
type IdentityStore struct {
	lock    sync.Mutex
	ID      string
	SaveErr error
	Saves   int
}

func (s *IdentityStore) Load(context.Context) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.ID, nil
}

func (s *IdentityStore) Save(_ context.Context, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.ID = id
	return nil
}

func (s *IdentityStore) SaveCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.Saves
}
