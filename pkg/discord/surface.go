package discord

import (
	"context"
	"errors"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/j0nas500/statsembed/pkg/metrics"
)

type SurfaceState int

const (
	Unresolved SurfaceState = iota
	Resolving
	Bound
)

func (s SurfaceState) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Bound:
		return "bound"
	default:
		return "unresolved"
	}
}

// IdentityStore makes the id of the surface message durable across restarts.
type IdentityStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, messageID string) error
}

// SurfaceManager owns the single message that displays the leaderboard in one channel.
// Every method issues at most one write to Discord and never retries.
type SurfaceManager struct {
	platform  Platform
	channelID string
	store     IdentityStore
	recorder  metrics.Recorder
	logger    *log.Logger

	lock      sync.Mutex
	state     SurfaceState
	messageID string
}

func NewSurfaceManager(platform Platform, channelID string, store IdentityStore, recorder metrics.Recorder, logger *log.Logger) *SurfaceManager {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &SurfaceManager{
		platform:  platform,
		channelID: channelID,
		store:     store,
		recorder:  recorder,
		logger:    logger.With("channel", channelID),
	}
}

func (m *SurfaceManager) State() SurfaceState {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.state
}

func (m *SurfaceManager) MessageID() string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.messageID
}

// Resolve binds to an existing message. Resolving the id the manager is already bound to
// is a no-op.
func (m *SurfaceManager) Resolve(ctx context.Context, messageID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.resolve(ctx, messageID)
}

func (m *SurfaceManager) resolve(ctx context.Context, messageID string) error {
	if m.state == Bound && m.messageID == messageID {
		return nil
	}
	if messageID == "" {
		return &SurfaceResolutionError{Err: errors.New("no message id stored")}
	}

	m.state = Resolving
	m.recorder.DiscordRequest(metrics.MessageFetch)
	msg, err := m.platform.ChannelMessage(ctx, m.channelID, messageID)
	if err != nil {
		m.unbind()
		return &SurfaceResolutionError{MessageID: messageID, Err: err}
	}
	m.bind(msg.ID)
	return nil
}

// Create posts a new message and persists its id. A failed save is logged; the manager
// stays bound for the lifetime of the process either way.
func (m *SurfaceManager) Create(ctx context.Context, placeholder *discordgo.MessageEmbed) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.create(ctx, placeholder)
}

func (m *SurfaceManager) create(ctx context.Context, placeholder *discordgo.MessageEmbed) error {
	m.state = Resolving
	m.recorder.DiscordRequest(metrics.MessageCreate)
	msg, err := m.platform.ChannelMessageSendEmbed(ctx, m.channelID, placeholder)
	if err != nil {
		m.unbind()
		return &SurfaceUpdateError{Op: "create", Err: err}
	}
	m.bind(msg.ID)
	m.logger.Info("created leaderboard message", "message", msg.ID)

	if m.store != nil {
		if err := m.store.Save(ctx, msg.ID); err != nil {
			m.logger.Warn("failed to persist message id; a new message will be posted after restart", "message", msg.ID, "err", err)
		}
	}
	return nil
}

// EnsureBound resolves the stored message id, falling back to posting placeholder.
func (m *SurfaceManager) EnsureBound(ctx context.Context, placeholder *discordgo.MessageEmbed) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.state == Bound {
		return nil
	}

	var stored string
	if m.store != nil {
		id, err := m.store.Load(ctx)
		if err != nil {
			m.logger.Warn("failed to load stored message id", "err", err)
		} else {
			stored = id
		}
	}
	if stored != "" {
		err := m.resolve(ctx, stored)
		if err == nil {
			m.logger.Info("resolved leaderboard message", "message", stored)
			return nil
		}
		m.logger.Warn("stored message is gone, posting a new one", "err", err)
	}
	return m.create(ctx, placeholder)
}

// Apply edits the bound message in place. If Discord reports the message as unknown the
// manager unbinds so the next EnsureBound posts a replacement.
func (m *SurfaceManager) Apply(ctx context.Context, embed *discordgo.MessageEmbed) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.state != Bound {
		return ErrNotBound
	}

	m.recorder.DiscordRequest(metrics.MessageEdit)
	_, err := m.platform.ChannelMessageEditEmbed(ctx, m.channelID, m.messageID, embed)
	if err != nil {
		if IsUnknownMessage(err) {
			m.logger.Warn("leaderboard message was deleted", "message", m.messageID)
			m.unbind()
		}
		return &SurfaceUpdateError{Op: "edit", Err: err}
	}
	return nil
}

func (m *SurfaceManager) bind(id string) {
	m.state = Bound
	m.messageID = id
}

func (m *SurfaceManager) unbind() {
	m.state = Unresolved
	m.messageID = ""
}
