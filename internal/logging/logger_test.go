package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	New(slog.LevelInfo, &buf).Error("reduction failed", "error", errors.New("dangling port"))
	assert.Contains(t, buf.String(), `err="dangling port"`)
	assert.NotContains(t, buf.String(), "error=")
}

func TestNewFansOutToExtraHandlers(t *testing.T) {
	var text, js bytes.Buffer
	l := New(slog.LevelWarn, &text, NewJSON(slog.LevelDebug, &js))
	l.Info("tick", "frame", 3)
	l.Warn("normal form reached", "steps", 7)

	assert.NotContains(t, text.String(), "tick")
	assert.Contains(t, text.String(), "normal form reached")

	lines := bytes.Split(bytes.TrimSpace(js.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &rec))
	assert.Equal(t, "normal form reached", rec["msg"])
	assert.EqualValues(t, 7, rec["steps"])
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewNop(t *testing.T) {
	assert.False(t, NewNop().Enabled(context.Background(), slog.LevelError))
}
