package bot

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

const readyTimeout = 30 * time.Second

// OpenSession connects to the Discord gateway. Only the guilds intent is needed: the bot
// never reads messages, it only posts and edits its own.
func OpenSession(botToken string, logger *log.Logger) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	dg.LogLevel = discordgo.LogWarning
	dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsGuilds)

	ready := make(chan struct{}, 1)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Info("bot is now online according to discord Ready handler", "user", r.User.Username)
		select {
		case ready <- struct{}{}:
		default:
		}
	})

	// Open a websocket connection to Discord and begin listening.
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("could not connect bot to the Discord servers: %w", err)
	}

	// permission checks need the bot user from the Ready payload
	select {
	case <-ready:
		return dg, nil
	case <-time.After(readyTimeout):
		dg.Close()
		return nil, errors.New("timed out waiting for the Discord Ready event")
	}
}
