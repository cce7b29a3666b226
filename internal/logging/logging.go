// Package logging builds the zerolog logger used by the dispatch entrypoint.
//
// Logging is off unless a level is configured: the entrypoint's stderr is part
// of the output it replays, so nothing may be written there by default.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLevel = "COMMANDEER_LOG_LEVEL"
	EnvFile  = "COMMANDEER_LOG_FILE"
)

// Config selects the log level and destination.
type Config struct {
	Level string // zerolog level name; empty disables logging
	File  string // file to append to; empty means the fallback writer
}

// ConfigFromEnv reads COMMANDEER_LOG_LEVEL and COMMANDEER_LOG_FILE.
func ConfigFromEnv() Config {
	return Config{
		Level: os.Getenv(EnvLevel),
		File:  os.Getenv(EnvFile),
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger for cfg. The returned closer releases the log file, if any.
func New(cfg Config, fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	if strings.TrimSpace(cfg.Level) == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var (
		w      = fallback
		closer io.Closer = nopCloser{}
	)

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file: %w", err)
		}

		w, closer = f, f
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()

	return logger, closer, nil
}
