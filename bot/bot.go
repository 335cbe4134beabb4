// Package bot wires configuration, storage, Discord and the refresh scheduler into the
// start/stop lifecycle of one stats leaderboard.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/j0nas500/statsembed/pkg/config"
	"github.com/j0nas500/statsembed/pkg/discord"
	"github.com/j0nas500/statsembed/pkg/locale"
	"github.com/j0nas500/statsembed/pkg/metrics"
	"github.com/j0nas500/statsembed/pkg/refresh"
	"github.com/j0nas500/statsembed/pkg/report"
)

// Stats is the data side of the leaderboard; storage.StatsRepository implements it.
type Stats interface {
	refresh.Source
	CheckTables(ctx context.Context) ([]string, error)
}

type Dependencies struct {
	Config        *config.Config
	Stats         Stats
	Platform      discord.Platform
	IdentityStore discord.IdentityStore
	// Lock is optional; without it only in-process overlap is prevented.
	Lock      refresh.CycleLock
	Localizer *locale.Localizer
	Recorder  metrics.Recorder
	Logger    *log.Logger
}

type Bot struct {
	config   *config.Config
	stats    Stats
	platform discord.Platform
	logger   *log.Logger

	Surface   *discord.SurfaceManager
	Scheduler *refresh.Scheduler
}

func New(deps Dependencies) *Bot {
	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	cfg := deps.Config
	surface := discord.NewSurfaceManager(deps.Platform, cfg.Channel, deps.IdentityStore, recorder, deps.Logger.With("component", "surface"))
	renderer := report.NewRenderer(cfg.Decoration(), deps.Localizer)

	return &Bot{
		config:   cfg,
		stats:    deps.Stats,
		platform: deps.Platform,
		logger:   deps.Logger,
		Surface:  surface,
		Scheduler: refresh.NewScheduler(deps.Stats, surface, renderer, deps.Logger, refresh.Options{
			Interval: cfg.IntervalDuration(),
			Lock:     deps.Lock,
			Recorder: recorder,
		}),
	}
}

// Start verifies tables and the target channel, then bootstraps and schedules the refresher.
// A *config.ConfigurationError or *discord.PermissionError means the bot must stay inert.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.checkTables(ctx); err != nil {
		return err
	}

	err := discord.CheckTarget(ctx, b.platform, b.config.Guild, b.config.Channel)
	var targetErr *discord.TargetError
	if errors.As(err, &targetErr) {
		return &config.ConfigurationError{Field: "channel", Reason: "invalid target", Err: err}
	}
	if err != nil {
		return err
	}

	b.logger.Info("starting stats leaderboard", "channel", b.config.Channel, "interval", b.config.IntervalDuration())
	return b.Scheduler.Start(ctx)
}

func (b *Bot) checkTables(ctx context.Context) error {
	missing, err := b.stats.CheckTables(ctx)
	if err != nil {
		return &config.ConfigurationError{Reason: "unable to verify tables", Err: err}
	}
	if len(missing) > 0 {
		return &config.ConfigurationError{
			Field:  "statsTable/playersTable",
			Reason: fmt.Sprintf("table(s) not found: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

// Stop cancels the schedule; a running cycle is allowed to finish.
func (b *Bot) Stop() {
	b.Scheduler.Stop()
	b.logger.Info("stats leaderboard stopped")
}
