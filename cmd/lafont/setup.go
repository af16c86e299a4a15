package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"lafont/internal/config"
	"lafont/internal/engine"
	"lafont/internal/logging"
	"lafont/internal/metrics"
	"lafont/internal/physics"
	"lafont/internal/scheduler"
	"lafont/pkg/core"
	"lafont/pkg/inet"
	_ "lafont/pkg/nets"

	"github.com/google/uuid"
)

// newLogger builds the run logger. The returned closer flushes the JSON log
// file when one is configured.
func newLogger(c *config.Config) (*slog.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	var (
		extra  []slog.Handler
		closer io.Closer = io.NopCloser(nil)
	)
	if c.LogJSON != "" {
		f, err := os.OpenFile(c.LogJSON, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		extra = append(extra, logging.NewJSON(level, f))
		closer = f
	}
	logger := logging.New(level, os.Stderr, extra...).With("run", uuid.NewString())
	return logger, closer, nil
}

// builder returns a function producing the configured initial net.
func builder(c *config.Config) (func() (*inet.Net, error), error) {
	p, ok := core.Lookup(c.Program)
	if !ok {
		return nil, fmt.Errorf("unknown program %q (available: %v)", c.Program, core.Names())
	}
	params := map[string]string{"seed": strconv.FormatInt(c.Seed, 10)}
	for k, v := range c.Params {
		params[k] = v
	}
	return func() (*inet.Net, error) {
		n, err := p.Build(params)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", p.Name, err)
		}
		return n, nil
	}, nil
}

func newEngine(c *config.Config, hooks engine.Hooks) (*engine.Engine, error) {
	s, err := engine.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	return engine.New(engine.WithStrategy(s), engine.WithValidation(c.CheckNet), engine.WithHooks(hooks)), nil
}

// newScheduler wires the net, engine and layout of a visualizer run.
func newScheduler(c *config.Config, logger *slog.Logger, m *metrics.Metrics) (*scheduler.Scheduler, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	build, err := builder(c)
	if err != nil {
		return nil, err
	}
	n, err := build()
	if err != nil {
		return nil, err
	}
	e, err := newEngine(c, engine.Hooks{})
	if err != nil {
		return nil, err
	}
	pc := c.Physics
	pc.Seed = c.Seed
	logger.Info("starting", "program", c.Program, "agents", n.Len(), "strategy", e.Strategy(), "skip", c.Skip)
	return scheduler.New(n, e, physics.New(pc),
		scheduler.WithConfig(scheduler.Config{Skip: c.Skip, ShowEdges: c.ShowEdges, TPS: c.TPS}),
		scheduler.WithBuilder(build),
		scheduler.WithLogger(logger),
		scheduler.WithMetrics(m),
	), nil
}
