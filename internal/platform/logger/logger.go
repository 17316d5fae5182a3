package logger

import (
	"log/slog"
	"os"
)

// New returns a structured stdout logger tagged with the service name.
func New(service string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler).With("service", service)
}
