package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// RequiredPermissions must all be granted to the bot on the target channel.
var RequiredPermissions = []struct {
	Name string
	Bit  int64
}{
	{"ViewChannel", discordgo.PermissionViewChannel},
	{"SendMessages", discordgo.PermissionSendMessages},
	{"EmbedLinks", discordgo.PermissionEmbedLinks},
}

// CheckTarget verifies that channelID is a text channel or thread inside guildID that the
// bot can post embeds to. It returns a *TargetError or a *PermissionError.
func CheckTarget(ctx context.Context, p Platform, guildID, channelID string) error {
	if guildID != "" {
		if _, err := p.Guild(ctx, guildID); err != nil {
			return &TargetError{Reason: fmt.Sprintf("guild %s could not be resolved", guildID), Err: err}
		}
	}

	channel, err := p.Channel(ctx, channelID)
	if err != nil {
		return &TargetError{Reason: fmt.Sprintf("channel %s could not be resolved", channelID), Err: err}
	}
	if guildID != "" && channel.GuildID != guildID {
		return &TargetError{Reason: fmt.Sprintf("channel %s does not belong to guild %s", channelID, guildID)}
	}
	if !isTextBased(channel) {
		return &TargetError{Reason: fmt.Sprintf("channel %s is not a text channel or thread", channelID)}
	}

	perms, err := p.BotPermissions(ctx, channelID)
	if err != nil {
		return &PermissionError{ChannelID: channelID, Err: err}
	}
	if missing := MissingPermissions(perms); len(missing) > 0 {
		return &PermissionError{ChannelID: channelID, Missing: missing}
	}
	return nil
}

func MissingPermissions(perms int64) []string {
	if perms&discordgo.PermissionAdministrator != 0 {
		return nil
	}
	var missing []string
	for _, p := range RequiredPermissions {
		if perms&p.Bit != p.Bit {
			missing = append(missing, p.Name)
		}
	}
	return missing
}

func isTextBased(c *discordgo.Channel) bool {
	switch c.Type {
	case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews:
		return true
	}
	return c.IsThread()
}
