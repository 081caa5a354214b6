// Package testutil holds small helpers shared by tests.
package testutil

import (
	"io"
	"log/slog"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}
