package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/ruffel/commandeer"
)

// Process implements commandeer.Process for local command execution.
type Process struct {
	env     *Environment
	cmd     *commandeer.Command
	execCmd *exec.Cmd

	mu     sync.RWMutex
	result *commandeer.Result
	done   chan struct{}
	closed bool
}

func (p *Process) start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("cannot start process %q: already closed", p.cmd.String())
	}

	path, err := p.env.resolve(p.cmd.Cmd)
	if err != nil {
		return &commandeer.TransportError{Command: p.cmd, Err: err}
	}

	p.execCmd = exec.CommandContext(ctx, path, p.cmd.Args...)
	// Children see the name they were invoked by, not the resolved path.
	p.execCmd.Args[0] = p.cmd.Cmd
	p.execCmd.Dir = p.cmd.Dir
	p.execCmd.Env = p.env.environ(p.cmd)
	p.execCmd.Stdin = p.cmd.Stdin
	p.execCmd.Stdout = p.cmd.Stdout
	p.execCmd.Stderr = p.cmd.Stderr

	// Own process group so Close and cancellation reach grandchildren too.
	setProcessGroup(p.execCmd)

	p.execCmd.Cancel = func() error {
		return killProcessGroup(p.execCmd.Process.Pid)
	}

	startTime := time.Now()

	if err := p.execCmd.Start(); err != nil {
		return &commandeer.TransportError{Command: p.cmd, Err: err}
	}

	p.done = make(chan struct{})

	go p.monitor(startTime)

	return nil
}

func (p *Process) monitor(startTime time.Time) {
	defer close(p.done)

	err := p.execCmd.Wait()

	// ExitCode is -1 when the process was killed by a signal.
	exitCode := 0
	if p.execCmd.ProcessState != nil {
		exitCode = p.execCmd.ProcessState.ExitCode()
	}

	p.mu.Lock()
	p.result = &commandeer.Result{
		ExitCode: exitCode,
		Duration: time.Since(startTime),
		Error:    err,
	}
	p.mu.Unlock()
}

// Wait blocks until the command completes.
// It returns a *commandeer.ExitError for a non-zero exit (including termination
// by signal), or the underlying error if waiting itself failed.
func (p *Process) Wait() error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()

		return fmt.Errorf("cannot wait on process %q: already closed", p.cmd.String())
	}

	if p.done == nil {
		p.mu.RUnlock()

		return fmt.Errorf("cannot wait on process %q: not started", p.cmd.String())
	}

	done := p.done
	p.mu.RUnlock()

	<-done

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.result.Error == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(p.result.Error, &exitErr) {
		return &commandeer.ExitError{
			Command:  p.cmd,
			ExitCode: exitErr.ExitCode(),
			Cause:    p.result.Error,
		}
	}

	return p.result.Error
}

// Result returns a copy of the final execution metadata.
// It is empty until Wait has returned.
func (p *Process) Result() *commandeer.Result {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.result == nil {
		return &commandeer.Result{}
	}

	res := *p.result

	return &res
}

// Signal sends an OS signal to the running process.
func (p *Process) Signal(sig os.Signal) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return fmt.Errorf("cannot signal process %q: already closed", p.cmd.String())
	}

	if p.execCmd == nil || p.execCmd.Process == nil {
		return fmt.Errorf("cannot signal process %q: not started", p.cmd.String())
	}

	return p.execCmd.Process.Signal(sig)
}

// Close releases the process. A process that is still running is killed
// together with its process group.
func (p *Process) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()

		return nil
	}

	p.closed = true
	done := p.done
	p.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
	default:
		if p.execCmd.Process != nil && p.execCmd.Process.Pid > 0 {
			_ = killProcessGroup(p.execCmd.Process.Pid)
		}

		<-done
	}

	return nil
}
