package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
)

// Platform is the slice of the Discord API the leaderboard needs.
type Platform interface {
	Guild(ctx context.Context, guildID string) (*discordgo.Guild, error)
	Channel(ctx context.Context, channelID string) (*discordgo.Channel, error)
	BotPermissions(ctx context.Context, channelID string) (int64, error)
	ChannelMessage(ctx context.Context, channelID, messageID string) (*discordgo.Message, error)
	ChannelMessageSendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
	ChannelMessageEditEmbed(ctx context.Context, channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

// SessionPlatform implements Platform on top of a connected discordgo session.
type SessionPlatform struct {
	Session *discordgo.Session
}

func NewSessionPlatform(s *discordgo.Session) *SessionPlatform {
	return &SessionPlatform{Session: s}
}

func (p *SessionPlatform) Guild(ctx context.Context, guildID string) (*discordgo.Guild, error) {
	return p.Session.Guild(guildID, discordgo.WithContext(ctx))
}

func (p *SessionPlatform) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	return p.Session.Channel(channelID, discordgo.WithContext(ctx))
}

func (p *SessionPlatform) BotPermissions(ctx context.Context, channelID string) (int64, error) {
	if p.Session.State == nil || p.Session.State.User == nil {
		return 0, errors.New("session is not ready; bot user unknown")
	}
	return p.Session.UserChannelPermissions(p.Session.State.User.ID, channelID, discordgo.WithContext(ctx))
}

func (p *SessionPlatform) ChannelMessage(ctx context.Context, channelID, messageID string) (*discordgo.Message, error) {
	return p.Session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
}

func (p *SessionPlatform) ChannelMessageSendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return p.Session.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx))
}

func (p *SessionPlatform) ChannelMessageEditEmbed(ctx context.Context, channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return p.Session.ChannelMessageEditEmbed(channelID, messageID, embed, discordgo.WithContext(ctx))
}

// IsUnknownMessage reports whether err is Discord's "Unknown Message" REST error.
func IsUnknownMessage(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == discordgo.ErrCodeUnknownMessage
	}
	return false
}
