// Package commandeer records the real output of external programs once and
// replays it later, so tests that shell out stay hermetic.
//
// # Core Interfaces
//
// - Environment: where commands run (the local machine, or a mock in unit tests).
// - Process: a running command handle (Wait, Signal, Close).
//
// # Record and Replay
//
// The fixture package persists captured invocations, the engine package records
// and replays them, and the session package redirects command names to the engine
// by placing launcher scripts on a private search path.
//
// Output is streaming-first: attach an io.Writer to a Command to capture it, or use
// the Executor wrapper for buffered results.
package commandeer

import (
	"context"
	"io"
	"os"
)

// Environment abstracts the system where commands are executed.
type Environment interface {
	io.Closer

	// Run executes a command synchronously.
	// Output is not captured by default; use Command.Stdout/Stderr.
	Run(ctx context.Context, cmd *Command) (*Result, error)

	// Start initiates a command asynchronously.
	// The caller must release the returned Process via Wait() or Close().
	Start(ctx context.Context, cmd *Command) (Process, error)

	// TargetOS returns the operating system of the target environment.
	TargetOS() TargetOS

	// LookPath resolves an executable name against the environment's search path.
	LookPath(ctx context.Context, file string) (string, error)
}

// Process represents a command that has been started but not yet completed.
type Process interface {
	io.Closer

	// Wait blocks until the process exits.
	// Returns an *ExitError if the exit code is non-zero.
	Wait() error

	// Result returns metadata (exit code, duration). Only valid after Wait.
	Result() *Result

	// Signal sends an OS signal to the process.
	Signal(sig os.Signal) error
}
