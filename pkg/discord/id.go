package discord

import (
	"errors"
	"strings"
)

// ParseChannelID accepts either a raw channel id or a channel mention (<#id>) as it is
// copied out of the Discord client.
func ParseChannelID(text string) (string, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "<#") && strings.HasSuffix(text, ">") {
		id := text[2 : len(text)-1]
		if err := ValidateSnowflake(id); err != nil {
			return "", err
		}
		return id, nil
	}
	if err := ValidateSnowflake(text); err != nil {
		return "", errors.New("channel does not conform to the correct format (`<#channelid>` or `channelid`)")
	}
	return text, nil
}
