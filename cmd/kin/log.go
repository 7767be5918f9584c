package main

import (
	"log/slog"
	"os"

	"kin/internal/slogutil"
)

// newLogger builds the CLI logger. Log lines go to stderr so they never mix
// with command output. KIN_LOG_LEVEL overrides the configured level.
func newLogger(configuredLevel string) *slog.Logger {
	level := configuredLevel
	if env := os.Getenv("KIN_LOG_LEVEL"); env != "" {
		level = env
	}
	return slogutil.NewLogger(os.Stderr, slogutil.LevelFromString(level))
}
