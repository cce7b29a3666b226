package commandeer

import (
	"bytes"
	"context"
	"errors"
)

// Executor wraps an Environment with buffered execution helpers.
type Executor struct {
	env Environment
}

// NewExecutor creates a new Executor with the given environment.
func NewExecutor(env Environment) *Executor {
	return &Executor{env: env}
}

// Run executes a command to completion.
// A non-zero exit is reported as *ExitError alongside the populated Result.
func (e *Executor) Run(ctx context.Context, cmd *Command) (*Result, error) {
	res, err := e.env.Run(ctx, cmd)
	if err != nil {
		return res, err
	}

	if res != nil && res.ExitCode != 0 {
		return res, &ExitError{
			Command:  cmd,
			ExitCode: res.ExitCode,
		}
	}

	return res, nil
}

// RunBuffered executes a command and captures both Stdout and Stderr in full.
// The returned BufferedResult is populated even when err is an *ExitError.
func (e *Executor) RunBuffered(ctx context.Context, cmd *Command) (*BufferedResult, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	cmdCopy := *cmd
	cmdCopy.Stdout = &stdoutBuf
	cmdCopy.Stderr = &stderrBuf

	result, err := e.Run(ctx, &cmdCopy)

	bufResult := &BufferedResult{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.Bytes(),
	}

	if result != nil {
		bufResult.Result = *result
	}

	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			exitErr.Stderr = bufResult.Stderr
			bufResult.ExitCode = exitErr.ExitCode
		}
	}

	return bufResult, err
}

// RunShell executes a shell command string using the target OS's default shell.
func (e *Executor) RunShell(ctx context.Context, script string) (*BufferedResult, error) {
	return e.RunBuffered(ctx, e.env.TargetOS().ShellCommand(script))
}

// LookPath resolves an executable path using the underlying environment's search path.
func (e *Executor) LookPath(ctx context.Context, file string) (string, error) {
	return e.env.LookPath(ctx, file)
}
