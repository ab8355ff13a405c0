// Package logging wires the process-wide slog setup: a JSON handler on
// stdout at boot, later joined by the async database handler once the
// connection is up.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the bootstrap JSON logger. Everything logged before the
// database handler attaches goes to stdout only.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
