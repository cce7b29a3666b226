package local

import "github.com/ruffel/commandeer"

// Config holds configuration for the local environment.
type Config struct {
	targetOS      commandeer.TargetOS
	searchPath    string
	hasSearchPath bool
	env           []string
}

// Option defines a functional option for the local provider.
type Option func(*Config)

// WithTargetOS overrides the detected operating system. Mostly useful in tests.
func WithTargetOS(os commandeer.TargetOS) Option {
	return func(c *Config) {
		c.targetOS = os
	}
}

// WithSearchPath makes every child resolve and see PATH=path instead of the
// process-wide value. An empty path is honoured (nothing resolves by name).
func WithSearchPath(path string) Option {
	return func(c *Config) {
		c.searchPath = path
		c.hasSearchPath = true
	}
}

// WithEnv adds KEY=VALUE pairs to the environment of every child.
// Command.Env entries still take precedence.
func WithEnv(kv ...string) Option {
	return func(c *Config) {
		c.env = append(c.env, kv...)
	}
}
