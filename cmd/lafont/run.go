package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"lafont/internal/config"
	"lafont/internal/metrics"
	"lafont/internal/scheduler"

	"golang.org/x/sync/errgroup"
)

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	logger, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	m := metrics.New()
	sched, err := newScheduler(cfg, logger, m)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	if cfg.MetricsAddr != "" {
		g.Go(func() error { return m.Serve(runCtx, cfg.MetricsAddr, logger) })
	}

	// the window has to own the main goroutine
	if cfg.Headless {
		err = runHeadless(runCtx, sched, cfg.Frames, out)
	} else {
		err = runWindow(cfg, sched, logger)
	}
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	if err != nil {
		logger.Error("run failed", "frame", sched.Frame(), "steps", sched.Steps(), "error", err)
		return err
	}
	logger.Info("done", "frames", sched.Frame(), "steps", sched.Steps(), "state", sched.State())
	return nil
}

// runHeadless writes one line per frame to out.
func runHeadless(ctx context.Context, sched *scheduler.Scheduler, frames int, out io.Writer) error {
	err := sched.Run(ctx, frames, scheduler.ExporterFunc(func(f scheduler.Frame) error {
		_, err := fmt.Fprintf(out, "frame=%d steps=%d total=%d agents=%d edges=%d normal=%t displacement=%.4g\n",
			f.Index, f.Steps, f.Total, len(f.Agents), len(f.Edges), f.Normal, f.Layout.MaxDisplacement)
		return err
	}))
	if ctx.Err() != nil {
		return nil
	}
	return err
}
