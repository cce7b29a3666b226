package session

import (
	"github.com/rs/zerolog"
	"github.com/ruffel/commandeer"
)

type config struct {
	fixtureDir    string
	searchPath    string
	hasSearchPath bool
	dispatcher    *Dispatcher
	truncate      bool
	targetOS      commandeer.TargetOS
	logger        zerolog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		targetOS: commandeer.DetectLocalOS(),
		logger:   zerolog.Nop(),
	}

	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// Option configures a Session.
type Option func(*config)

// WithFixtureDir sets the project directory the fixture is resolved under.
// Defaults to the working directory. The fixture lives in its FixtureSubdir.
func WithFixtureDir(dir string) Option {
	return func(c *config) {
		c.fixtureDir = dir
	}
}

// WithSearchPath replaces the original search path captured at start,
// which otherwise comes from the PATH of the current process.
func WithSearchPath(path string) Option {
	return func(c *config) {
		c.searchPath = path
		c.hasSearchPath = true
	}
}

// WithDispatcher uses d instead of resolving a dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(c *config) {
		c.dispatcher = &d
	}
}

// WithTruncate resets the fixture once when a record session starts, so
// every call made during the session lands in a fresh file.
// It has no effect in replay mode.
func WithTruncate(truncate bool) Option {
	return func(c *config) {
		c.truncate = truncate
	}
}

// WithTargetOS selects the launcher flavour. Defaults to the host OS.
func WithTargetOS(os commandeer.TargetOS) Option {
	return func(c *config) {
		c.targetOS = os
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
