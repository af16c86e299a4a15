// Package scheduler interleaves reduction steps with layout relaxation and
// publishes a frame per tick.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lafont/internal/core"
	"lafont/internal/engine"
	"lafont/internal/metrics"
	"lafont/internal/physics"
	"lafont/pkg/inet"
)

// Config controls how much reduction happens per frame.
type Config struct {
	// Skip is the number of rewrites per frame. Values below 1 mean 1.
	Skip      int
	ShowEdges bool
	// TPS paces Run. Zero runs as fast as possible.
	TPS int
}

// Scheduler owns a net, the engine reducing it and the layout placing it.
// It is not safe for concurrent use.
type Scheduler struct {
	cfg     Config
	net     *inet.Net
	engine  *engine.Engine
	layout  *physics.Layout
	build   func() (*inet.Net, error)
	logger  *slog.Logger
	metrics *metrics.Metrics

	state engine.State
	frame int
	total int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithConfig sets skip, edge display and pacing.
func WithConfig(cfg Config) Option {
	return func(s *Scheduler) { s.cfg = cfg }
}

// WithLogger routes scheduler events to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithMetrics records every tick in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// WithBuilder lets Reset rebuild the initial net.
func WithBuilder(build func() (*inet.Net, error)) Option {
	return func(s *Scheduler) { s.build = build }
}

// New returns a scheduler for n.
func New(n *inet.Net, e *engine.Engine, l *physics.Layout, opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:    Config{Skip: 1},
		net:    n,
		engine: e,
		layout: l,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg.Skip = max(s.cfg.Skip, 1)
	s.state = engine.StateOf(n)
	return s
}

// Net returns the net being reduced.
func (s *Scheduler) Net() *inet.Net { return s.net }

// Layout returns the body layout.
func (s *Scheduler) Layout() *physics.Layout { return s.layout }

// State reports whether the net still has active pairs.
func (s *Scheduler) State() engine.State { return s.state }

// Frame returns the index of the next frame.
func (s *Scheduler) Frame() int { return s.frame }

// Steps returns the number of rewrites applied since the last reset.
func (s *Scheduler) Steps() int { return s.total }

// Skip returns the rewrites per frame.
func (s *Scheduler) Skip() int { return s.cfg.Skip }

// SetSkip changes the rewrites per frame.
func (s *Scheduler) SetSkip(n int) { s.cfg.Skip = max(n, 1) }

// ShowEdges reports whether frames carry edges.
func (s *Scheduler) ShowEdges() bool { return s.cfg.ShowEdges }

// SetShowEdges toggles edges in frames.
func (s *Scheduler) SetShowEdges(on bool) { s.cfg.ShowEdges = on }

// Tick applies up to Skip rewrites while the net is reducible, relaxes the
// layout and returns the resulting frame. Once the net is in normal form only
// the layout moves. An error means the net is corrupt.
func (s *Scheduler) Tick() (Frame, error) {
	start := time.Now()
	var res engine.Result
	if s.state == engine.Reducible {
		var err error
		res, err = s.engine.StepN(s.net, s.cfg.Skip)
		s.total += res.Applied
		if err != nil {
			s.logger.Error("reduction failed", "frame", s.frame, "steps", s.total, "error", err)
			return Frame{}, fmt.Errorf("frame %d: %w", s.frame, err)
		}
		for _, rw := range res.Rewrites {
			s.metrics.ObserveRewrite(rw)
		}
		if res.Normal {
			s.state = engine.Normal
			s.logger.Info("normal form reached", "frame", s.frame, "steps", s.total, "agents", s.net.Len())
		}
	}

	st := s.layout.Relax(s.net, 0)
	f := s.snapshot(res.Applied, st)
	s.metrics.ObserveFrame(metrics.Frame{
		Duration:        time.Since(start),
		Agents:          s.net.Len(),
		Wires:           len(s.net.Wires()),
		MaxDisplacement: st.MaxDisplacement,
		Normal:          f.Normal,
	})
	s.logger.Debug("tick", "frame", s.frame, "steps", res.Applied, "agents", len(f.Agents), "seeded", st.Seeded, "pruned", st.Pruned)
	s.frame++
	return f, nil
}

// Run ticks until ctx is done, frames frames have been produced (when frames
// is positive) or the exporter fails. With a positive TPS ticks are paced.
func (s *Scheduler) Run(ctx context.Context, frames int, exp Exporter) error {
	var pace *core.FixedStep
	if s.cfg.TPS > 0 {
		pace = core.NewFixedStep(s.cfg.TPS)
	}
	for i := 0; frames <= 0 || i < frames; i++ {
		if pace != nil {
			if err := pace.Wait(ctx); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		f, err := s.Tick()
		if err != nil {
			return err
		}
		if exp == nil {
			continue
		}
		if err := exp.Export(f); err != nil {
			return fmt.Errorf("export frame %d: %w", f.Index, err)
		}
	}
	return nil
}

// ErrNoBuilder is returned by Reset when the scheduler was built without a
// way to rebuild its net.
var ErrNoBuilder = errors.New("scheduler has no net builder")

// Reset rebuilds the initial net, drops all bodies and zeroes the engine
// counters.
func (s *Scheduler) Reset() error {
	if s.build == nil {
		return ErrNoBuilder
	}
	n, err := s.build()
	if err != nil {
		return fmt.Errorf("rebuild net: %w", err)
	}
	s.net = n
	s.layout.Reset()
	s.engine.ResetStats()
	s.state = engine.StateOf(n)
	s.frame = 0
	s.total = 0
	s.logger.Info("reset", "agents", n.Len())
	return nil
}
