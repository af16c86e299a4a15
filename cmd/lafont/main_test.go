package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a fresh command tree so no flag value leaks between tests.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProgramsListsBuiltins(t *testing.T) {
	out, err := execute(t, "programs")
	require.NoError(t, err)
	for _, name := range []string{"annihilate", "commute", "dup-tree", "erase-tree", "lafont", "random"} {
		assert.Contains(t, out, name)
	}
}

func TestReduceEraseTree(t *testing.T) {
	out, err := execute(t, "reduce", "--program", "erase-tree", "--param", "depth=2", "--validate")
	require.NoError(t, err)
	assert.Contains(t, out, "steps:         7")
	assert.Contains(t, out, "agents:        8 -> 0")
	assert.Contains(t, out, "normal form:   c=0 d=0 e=0")
}

func TestReduceUsesDefaultsOfAFreshCommand(t *testing.T) {
	_, err := execute(t, "reduce", "--program", "dup-tree", "--param", "depth=1")
	require.NoError(t, err)

	// depth=1 from the previous run must not carry over; the default depth is 3
	out, err := execute(t, "reduce", "--program", "dup-tree")
	require.NoError(t, err)
	assert.Contains(t, out, "agents:        16 -> 30")
}

func TestHeadlessRunPrintsFrames(t *testing.T) {
	out, err := execute(t, "--headless", "--frames", "3", "--program", "commute", "--tps", "0", "-v")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "frame=0 steps=1 total=1 agents=4 edges=4 normal=true"), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "frame=2 steps=0 total=1"), lines[2])
}

func TestHeadlessRunReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lafont.yaml")
	require.NoError(t, os.WriteFile(path, []byte("program: annihilate\nframes: 2\nskip: 4\n"), 0o644))

	out, err := execute(t, "--config", path, "--headless", "--tps", "0", "--frames", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "frame=0 steps=1 total=1 agents=0 edges=0 normal=true"), lines[0])
}

func TestUnknownProgramFails(t *testing.T) {
	_, err := execute(t, "reduce", "--program", "nope")
	assert.ErrorContains(t, err, `unknown program "nope"`)
}
