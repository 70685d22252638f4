package server

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-chi/httplog/v3"
)

// SetupLogging sends JSON logs to stdout and to logFile, and installs the
// logger as the slog default. The returned file must be closed by the caller.
func SetupLogging(logFile string, level slog.Level) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	// air already captures stdout
	var out io.Writer = f
	if os.Getenv("AIR_RESTART_COUNT") == "" {
		out = io.MultiWriter(os.Stdout, f)
	}

	logger := newLogger(out, level)
	slog.SetDefault(logger)
	return logger, f, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presence-dashboard"),
	)
}
