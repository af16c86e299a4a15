//go:build ebiten

package main

import (
	"errors"
	"log/slog"

	"lafont/internal/app"
	"lafont/internal/config"
	"lafont/internal/scheduler"

	"github.com/hajimehoshi/ebiten/v2"
)

func runWindow(cfg *config.Config, sched *scheduler.Scheduler, logger *slog.Logger) error {
	game := app.New(cfg.Program, sched, cfg.Width, cfg.Height, logger)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("lafont: " + cfg.Program)
	ebiten.SetTPS(max(cfg.TPS, 1))
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
