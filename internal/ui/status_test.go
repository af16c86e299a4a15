package ui

import (
	"testing"

	"lafont/internal/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLines(t *testing.T) {
	f := scheduler.Frame{Index: 4, Steps: 2, Total: 9, Agents: make([]scheduler.AgentView, 3)}
	lines := StatusLines("dup-tree", f, 2, false)
	require.Len(t, lines, 3)
	assert.Equal(t, "dup-tree: reducing", lines[0])
	assert.Equal(t, "frame 4  steps 9 (+2, 2/frame)", lines[1])
	assert.Equal(t, "agents 3  edges 0", lines[2])

	f.Normal = true
	assert.Equal(t, "dup-tree: normal form (paused)", StatusLines("dup-tree", f, 2, true)[0])
}
