package engine

import (
	"github.com/rs/zerolog"
	"github.com/ruffel/commandeer"
)

type config struct {
	env      commandeer.Environment
	truncate bool
	logger   zerolog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{logger: zerolog.Nop()}

	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// Option configures a Recorder, Replayer or Dispatch call.
type Option func(*config)

// WithEnvironment sets where real programs are spawned while recording.
// Defaults to a local environment using the process search path.
func WithEnvironment(env commandeer.Environment) Option {
	return func(c *config) {
		c.env = env
	}
}

// WithTruncate discards every existing recording in the fixture before the
// new one is written, instead of appending to it.
func WithTruncate(truncate bool) Option {
	return func(c *config) {
		c.truncate = truncate
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
