// Package refresh runs the periodic query, render and apply cycle for one leaderboard surface.
package refresh

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/j0nas500/statsembed/pkg/discord"
	"github.com/j0nas500/statsembed/pkg/metrics"
	"github.com/j0nas500/statsembed/pkg/report"
	"github.com/j0nas500/statsembed/pkg/storage"
)

const DefaultInterval = 5 * time.Minute

// Surface is the single message the scheduler keeps up to date.
type Surface interface {
	EnsureBound(ctx context.Context, placeholder *discordgo.MessageEmbed) error
	Apply(ctx context.Context, embed *discordgo.MessageEmbed) error
}

// CycleLock is an optional cross-process guard. ok is false when another holder has it.
type CycleLock interface {
	TryLock(ctx context.Context, ttl time.Duration) (release func(), ok bool, err error)
}

type Options struct {
	Interval time.Duration
	// CycleTimeout bounds a single cycle. Defaults to Interval.
	CycleTimeout time.Duration
	TopN         int
	Lock         CycleLock
	Recorder     metrics.Recorder
}

type Scheduler struct {
	source   Source
	surface  Surface
	renderer *report.Renderer
	logger   *log.Logger
	opts     Options

	inFlight atomic.Bool
	wg       sync.WaitGroup

	lock    sync.Mutex
	cancel  context.CancelFunc
	stopped bool

	now       func() time.Time
	newTicker func(time.Duration) (<-chan time.Time, func())
}

func NewScheduler(source Source, surface Surface, renderer *report.Renderer, logger *log.Logger, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.CycleTimeout <= 0 {
		opts.CycleTimeout = opts.Interval
	}
	if opts.TopN <= 0 {
		opts.TopN = storage.DefaultTopN
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.Noop{}
	}
	return &Scheduler{
		source:   source,
		surface:  surface,
		renderer: renderer,
		logger:   logger.With("component", "refresh"),
		opts:     opts,
		now:      time.Now,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
}

// Start runs the first cycle synchronously, binding the surface under the cycle lock, and
// then schedules the recurring cycle. Only a failure to bind the surface is returned; a
// failed first cycle is reported like any other. When another instance holds the lock the
// surface is bound by a later cycle.
func (s *Scheduler) Start(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.cancel != nil || s.stopped {
		return errors.New("scheduler already started")
	}

	s.inFlight.Store(true)
	var bindErr *surfaceBindError
	if err := s.tick(ctx); errors.As(err, &bindErr) {
		return bindErr.Err
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	ticks, stopTicker := s.newTicker(s.opts.Interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer stopTicker()
		s.run(loopCtx, ticks)
	}()
	s.logger.Info("refresh scheduled", "interval", s.opts.Interval)
	return nil
}

// Stop halts future cycles and waits for an in-flight cycle to finish. It is safe to call
// more than once.
func (s *Scheduler) Stop() {
	s.lock.Lock()
	s.stopped = true
	if s.cancel != nil {
		s.cancel()
	}
	s.lock.Unlock()
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context, ticks <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			if !s.inFlight.CompareAndSwap(false, true) {
				s.logger.Warn("previous cycle still running, skipping tick")
				s.opts.Recorder.CycleSkipped(metrics.SkipInFlight)
				continue
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				_ = s.tick(context.Background())
			}()
		}
	}
}

// tick runs one guarded cycle and clears the in-flight flag. Binding the surface happens
// inside the cycle so it is covered by the cross-process lock. The cycle context is not tied
// to Stop so that a running edit is never cut off halfway.
func (s *Scheduler) tick(parent context.Context) error {
	defer s.inFlight.Store(false)
	ctx, cancel := context.WithTimeout(parent, s.opts.CycleTimeout)
	defer cancel()

	if s.opts.Lock != nil {
		release, ok, err := s.opts.Lock.TryLock(ctx, s.opts.Interval)
		if err != nil {
			s.logger.Error("unable to obtain refresh lock, skipping cycle", "err", err)
			s.opts.Recorder.CycleSkipped(metrics.SkipLockUnavailable)
			return nil
		}
		if !ok {
			s.logger.Info("another instance is refreshing this surface, skipping cycle")
			s.opts.Recorder.CycleSkipped(metrics.SkipLockHeld)
			return nil
		}
		defer release()
	}
	return s.RunCycle(ctx)
}

// RunCycle performs one query, render and apply pass. Errors are logged and recorded here;
// they are returned for callers that want them.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	logger := s.logger.With("cycle", uuid.NewString())
	start := s.now()
	logger.Debug("cycle started")

	err := s.cycle(ctx, logger)
	took := s.now().Sub(start)
	result := classify(err)
	s.opts.Recorder.CycleFinished(result, took)
	if err != nil {
		logger.Error("cycle failed", "result", result, "took", took, "err", err)
		return err
	}
	logger.Info("leaderboard updated", "took", took)
	return nil
}

func (s *Scheduler) cycle(ctx context.Context, logger *log.Logger) error {
	// binds on the first cycle, and re-posts the message if a previous apply found it deleted
	if err := s.surface.EnsureBound(ctx, s.renderer.Placeholder().Embed()); err != nil {
		return &surfaceBindError{Err: err}
	}
	data, err := Collect(ctx, s.source, s.opts.TopN, s.now())
	if err != nil {
		return err
	}
	logger.Debug("stats collected", "players", data.Totals.Players)
	return s.surface.Apply(ctx, s.renderer.Full(data).Embed())
}

// surfaceBindError marks a cycle that could not resolve or post the surface message.
type surfaceBindError struct {
	Err error
}

func (e *surfaceBindError) Error() string {
	return "binding surface: " + e.Err.Error()
}

func (e *surfaceBindError) Unwrap() error {
	return e.Err
}

func classify(err error) string {
	var (
		resErr *discord.SurfaceResolutionError
		updErr *discord.SurfaceUpdateError
	)
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case storage.IsDataSourceError(err):
		return metrics.ResultDataSource
	case errors.As(err, &updErr), errors.As(err, &resErr), errors.Is(err, discord.ErrNotBound):
		return metrics.ResultSurface
	default:
		return metrics.ResultOther
	}
}
