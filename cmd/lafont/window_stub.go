//go:build !ebiten

package main

import (
	"errors"
	"log/slog"

	"lafont/internal/config"
	"lafont/internal/scheduler"
)

func runWindow(*config.Config, *scheduler.Scheduler, *slog.Logger) error {
	return errors.New("the window requires the ebiten build tag; rebuild with -tags ebiten or pass --headless")
}
