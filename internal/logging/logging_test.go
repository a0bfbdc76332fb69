package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpggio/atelier/internal/config"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewWritesToConfiguredFile(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Path = filepath.Join(t.TempDir(), "logs", "atelier.log")
	cfg.Log.Level = "warn"

	logger, closeFn, err := New(cfg)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "tool", "approve_quote")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(cfg.Log.Path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "hidden")
	require.Contains(t, string(data), "tool=approve_quote")
}

func TestFileWriterTrimsAtLineBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atelier.log")
	w, err := OpenFile(path)
	require.NoError(t, err)
	defer w.Close()

	line := []byte(strings.Repeat("x", 1023) + "\n")
	chunk := bytes.Repeat(line, 1024)
	for range 7 {
		_, err := w.Write(chunk)
		require.NoError(t, err)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.LessOrEqual(t, len(data), MaxSize)
	require.Zero(t, len(data)%len(line), "file must hold whole lines")
}
