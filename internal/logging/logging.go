// Package logging builds the process logger from configuration.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rpggio/atelier/internal/config"
)

// File size limits. Once a log file passes MaxSize it is cut back to its
// newest KeepSize bytes, starting at a line boundary.
const (
	MaxSize  = 6 * 1024 * 1024
	KeepSize = 5 * 1024 * 1024
)

// New returns a text logger for cfg and a function releasing its file, if
// any. Stdio mode logs to stderr because stdout carries the protocol.
func New(cfg config.Config) (*slog.Logger, func() error, error) {
	var out io.Writer = os.Stdout
	if cfg.Transport.Mode == config.TransportStdio {
		out = os.Stderr
	}
	closeFn := func() error { return nil }

	if cfg.Log.Path != "" {
		fw, err := OpenFile(cfg.Log.Path)
		if err != nil {
			return nil, nil, err
		}
		out = fw
		closeFn = fw.Close
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Log.Level),
	}))
	return logger, closeFn, nil
}

// ParseLevel maps a config level name to a slog level. Unknown names log at info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FileWriter appends to a size-capped log file.
type FileWriter struct {
	mu   sync.Mutex
	file *os.File
}

// OpenFile opens or creates path, creating parent directories.
func OpenFile(path string) (*FileWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	w := &FileWriter{file: file}
	if err := w.trim(); err != nil {
		_ = file.Close()
		return nil, err
	}
	return w, nil
}

func (w *FileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.trim()
}

func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

func (w *FileWriter) trim() error {
	info, err := w.file.Stat()
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	size := info.Size()
	if size <= MaxSize {
		return nil
	}

	tail := make([]byte, KeepSize)
	n, err := w.file.ReadAt(tail, size-KeepSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read log tail: %w", err)
	}
	tail = tail[:n]
	if i := bytes.IndexByte(tail, '\n'); i >= 0 {
		tail = tail[i+1:]
	}

	if err := w.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate log file: %w", err)
	}
	// O_APPEND writes land at the new end after truncation.
	if _, err := w.file.Write(tail); err != nil {
		return fmt.Errorf("rewrite log tail: %w", err)
	}
	return nil
}
