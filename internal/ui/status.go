package ui

import (
	"fmt"

	"lafont/internal/scheduler"
)

// StatusLines summarises a frame for the top-left corner of the view.
func StatusLines(program string, f scheduler.Frame, skip int, paused bool) []string {
	state := "reducing"
	if f.Normal {
		state = "normal form"
	}
	if paused {
		state += " (paused)"
	}
	return []string{
		fmt.Sprintf("%s: %s", program, state),
		fmt.Sprintf("frame %d  steps %d (+%d, %d/frame)", f.Index, f.Total, f.Steps, skip),
		fmt.Sprintf("agents %d  edges %d", len(f.Agents), len(f.Edges)),
	}
}
