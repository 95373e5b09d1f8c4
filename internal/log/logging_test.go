package log

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace": LevelTrace,
		"DEBUG": slog.LevelDebug,
		"":      slog.LevelInfo,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestResolveFormat(t *testing.T) {
	assert.Equal(t, FormatText, ResolveFormat(FormatText, nil))
	assert.Equal(t, FormatJSON, ResolveFormat(FormatJSON, nil))
	assert.Equal(t, FormatJSON, ResolveFormat(FormatAuto, nil))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, FormatJSON, ResolveFormat(FormatAuto, f))
}

func TestLevelFilterAndMultiHandler(t *testing.T) {
	var low, high bytes.Buffer
	h := MultiHandler{hs: []slog.Handler{
		LevelFilter{pass: func(l slog.Level) bool { return l < slog.LevelError }, h: slog.NewTextHandler(&low, &slog.HandlerOptions{Level: slog.LevelDebug})},
		LevelFilter{pass: func(l slog.Level) bool { return l >= slog.LevelError }, h: slog.NewJSONHandler(&high, nil)},
	}}
	logger := slog.New(h).With("run", 1)

	logger.Debug("dbg")
	logger.Error("bad")

	assert.Contains(t, low.String(), "msg=dbg run=1")
	assert.NotContains(t, low.String(), "bad")
	assert.Contains(t, high.String(), `"msg":"bad","run":1`)
	assert.NotContains(t, high.String(), "dbg")

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, h.Enabled(context.Background(), LevelTrace))
}

func TestSetupLoggerWithFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "gen.log")
	logger, closers, err := SetupLogger("debug", p, FormatJSON)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("Generated declaration", "file", "ns/Foo.java")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="Generated declaration" file=ns/Foo.java`)
}

func TestSetupLoggerBadFile(t *testing.T) {
	_, _, err := SetupLogger("info", filepath.Join(t.TempDir(), "missing", "dir", "x.log"), FormatText)
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
