package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds a text slog logger writing to stdout and a rotating file.
// If the log directory cannot be created the file sink is skipped rather
// than failing the run.
func NewLogger(path string) *slog.Logger {
	if path == "" {
		path = "logs/weights.log"
	}

	var w io.Writer = os.Stdout
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		rotated := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		w = io.MultiWriter(os.Stdout, rotated)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler)
}
