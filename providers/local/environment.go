package local

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/ruffel/commandeer"
)

var _ commandeer.Environment = (*Environment)(nil)

// Environment implements commandeer.Environment for the local operating system.
// It is safe for concurrent use.
type Environment struct {
	cfg Config

	mu     sync.RWMutex
	closed bool
}

// New creates a new local environment.
func New(opts ...Option) (*Environment, error) {
	cfg := Config{
		targetOS: commandeer.DetectLocalOS(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Environment{cfg: cfg}, nil
}

// Run executes a command synchronously on the local machine.
// The Result is returned even when the command exits non-zero.
func (e *Environment) Run(ctx context.Context, cmd *commandeer.Command) (*commandeer.Result, error) {
	process, err := e.Start(ctx, cmd)
	if err != nil {
		return nil, err
	}

	defer func() { _ = process.Close() }()

	waitErr := process.Wait()

	return process.Result(), waitErr
}

// Start begins command execution asynchronously.
// Caller must close/wait on the returned Process.
func (e *Environment) Start(ctx context.Context, cmd *commandeer.Command) (commandeer.Process, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if e.isClosed() {
		return nil, fmt.Errorf("cannot start command %q: %w", cmd.String(), commandeer.ErrEnvironmentClosed)
	}

	process := &Process{
		env: e,
		cmd: cmd,
	}

	if err := process.start(ctx); err != nil {
		return nil, err
	}

	return process, nil
}

// TargetOS returns the operating system of the host machine.
func (e *Environment) TargetOS() commandeer.TargetOS {
	return e.cfg.targetOS
}

// SearchPath returns the search path children see and whether one was configured.
func (e *Environment) SearchPath() (string, bool) {
	return e.cfg.searchPath, e.cfg.hasSearchPath
}

// Close shuts down the environment. New Start calls will fail.
func (e *Environment) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true

	return nil
}

// LookPath resolves file against the configured search path, or the process
// PATH when none was configured.
func (e *Environment) LookPath(_ context.Context, file string) (string, error) {
	if e.isClosed() {
		return "", fmt.Errorf("cannot look up path: %w", commandeer.ErrEnvironmentClosed)
	}

	if !e.cfg.hasSearchPath {
		return exec.LookPath(file)
	}

	return lookPathIn(file, e.cfg.searchPath)
}

// resolve returns the executable path to spawn for name.
func (e *Environment) resolve(name string) (string, error) {
	if !e.cfg.hasSearchPath || strings.ContainsAny(name, `/\`) {
		return name, nil
	}

	return lookPathIn(name, e.cfg.searchPath)
}

// environ returns the child environment, or nil to inherit the parent's unchanged.
// Later entries win, matching os/exec's duplicate handling.
func (e *Environment) environ(cmd *commandeer.Command) []string {
	if !e.cfg.hasSearchPath && len(e.cfg.env) == 0 && len(cmd.Env) == 0 {
		return nil
	}

	env := os.Environ()
	if e.cfg.hasSearchPath {
		env = append(env, "PATH="+e.cfg.searchPath)
	}

	env = append(env, e.cfg.env...)

	return append(env, cmd.Env...)
}

func (e *Environment) isClosed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.closed
}
