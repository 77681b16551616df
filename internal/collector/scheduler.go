package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"hwgauge/internal/layout"
	"hwgauge/internal/model"
	"hwgauge/internal/render"
)

type State int32

const (
	StateRunning State = iota
	StateClosing
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Clock is injected so tests can drive the loop without wall time.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(ctx context.Context, d time.Duration) {
	sleepWithContext(ctx, d)
}

// Sampler yields one tick of raw host metrics.
type Sampler interface {
	Collect(ctx context.Context) (model.RawMetrics, error)
}

// FrameObserver receives per-frame timing. Overrun means the frame took at
// least the whole frame budget and no sleep followed it.
type FrameObserver interface {
	ObserveFrame(elapsed time.Duration, overrun bool)
}

type nopObserver struct{}

func (nopObserver) ObserveFrame(time.Duration, bool) {}

type Scheduler struct {
	logger        *slog.Logger
	sampler       Sampler
	surface       render.Surface
	baseline      model.CapacityBaseline
	frameDuration time.Duration
	clock         Clock
	observer      FrameObserver
	state         atomic.Int32
}

type Option func(*Scheduler)

func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

func WithObserver(o FrameObserver) Option {
	return func(s *Scheduler) { s.observer = o }
}

func NewScheduler(
	logger *slog.Logger,
	sampler Sampler,
	surface render.Surface,
	baseline model.CapacityBaseline,
	refreshHz float64,
	opts ...Option,
) *Scheduler {
	if refreshHz <= 0 {
		refreshHz = 10
	}
	s := &Scheduler{
		logger:        logger,
		sampler:       sampler,
		surface:       surface,
		baseline:      baseline,
		frameDuration: time.Duration(float64(time.Second) / refreshHz),
		clock:         SystemClock{},
		observer:      nopObserver{},
	}
	s.state.Store(int32(StateStopped))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) State() State { return State(s.state.Load()) }

func (s *Scheduler) FrameDuration() time.Duration { return s.frameDuration }

// Run drives the frame loop until the surface asks to close or ctx is
// cancelled. A close request still completes the iteration it was seen in.
// Run does not release the sampler or the surface; the owner does that after
// Run returns.
func (s *Scheduler) Run(ctx context.Context) error {
	s.state.Store(int32(StateRunning))
	defer s.state.Store(int32(StateStopped))

	for s.State() == StateRunning {
		if ctx.Err() != nil {
			s.logger.Debug("frame loop cancelled")
			return nil
		}
		start := s.clock.Now()

		s.surface.PollEvents()
		if s.surface.CloseRequested() {
			s.state.Store(int32(StateClosing))
		}

		if err := s.frame(ctx); err != nil {
			return err
		}

		elapsed := s.clock.Now().Sub(start)
		overrun := elapsed >= s.frameDuration
		s.observer.ObserveFrame(elapsed, overrun)
		if s.State() != StateRunning {
			break
		}
		if !overrun {
			// no catch-up: a slow frame simply delays the next one
			s.clock.Sleep(ctx, s.frameDuration-elapsed)
		}
	}
	s.logger.Debug("frame loop stopped")
	return nil
}

func (s *Scheduler) frame(ctx context.Context) error {
	raw, err := s.sampler.Collect(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		s.logger.Warn("sample failed", "error", err)
	}
	snap := Normalize(raw, s.baseline)

	width, height := s.surface.Size()
	lay := layout.Compute(width, height)
	list := Compose(snap, lay, s.surface.Measurer())

	if err := s.surface.Submit(list); err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}
	if err := s.surface.Present(); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
