package logger

import (
	"log/slog"
	"os"
)

// New returns a structured stdout logger shared by services and middleware.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
