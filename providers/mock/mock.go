package mock

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/ruffel/commandeer"
	"github.com/stretchr/testify/mock"
)

// Environment implements a mock commandeer.Environment using testify/mock.
type Environment struct {
	mock.Mock

	osMu     sync.RWMutex
	targetOS commandeer.TargetOS
}

var _ commandeer.Environment = (*Environment)(nil)

// New creates a new mock environment.
func New() *Environment {
	return &Environment{}
}

// Run mocks running a command to completion.
func (m *Environment) Run(ctx context.Context, cmd *commandeer.Command) (*commandeer.Result, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*commandeer.Result), args.Error(1)
}

// Start mocks starting a command asynchronously.
func (m *Environment) Start(ctx context.Context, cmd *commandeer.Command) (commandeer.Process, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(commandeer.Process), args.Error(1)
}

// LookPath mocks resolving an executable name.
func (m *Environment) LookPath(ctx context.Context, file string) (string, error) {
	args := m.Called(ctx, file)

	return args.String(0), args.Error(1)
}

// SetTargetOS sets the operating system reported by TargetOS.
func (m *Environment) SetTargetOS(os commandeer.TargetOS) {
	m.osMu.Lock()
	defer m.osMu.Unlock()

	m.targetOS = os
}

// TargetOS returns the value given to SetTargetOS, or OSLinux.
// It is not a recorded call, so it needs no expectation.
func (m *Environment) TargetOS() commandeer.TargetOS {
	m.osMu.RLock()
	defer m.osMu.RUnlock()

	if m.targetOS == commandeer.OSUnknown {
		return commandeer.OSLinux
	}

	return m.targetOS
}

// Close mocks closing the environment.
func (m *Environment) Close() error {
	args := m.Called()

	return args.Error(0)
}

// OnRun registers a Run expectation for name/args that writes stdout and
// stderr to the command's streams and exits with exitCode.
func (m *Environment) OnRun(name string, args []string, exitCode int, stdout, stderr string) *mock.Call {
	return m.On("Run", mock.Anything, MatchCommand(name, args...)).
		Run(func(callArgs mock.Arguments) {
			cmd := callArgs.Get(1).(*commandeer.Command)
			WriteOutput(cmd.Stdout, stdout)(callArgs)
			WriteOutput(cmd.Stderr, stderr)(callArgs)
		}).
		Return(&commandeer.Result{ExitCode: exitCode}, nil)
}

// MatchCommand matches a *commandeer.Command by binary name and exact arguments.
func MatchCommand(name string, args ...string) any {
	return mock.MatchedBy(func(cmd *commandeer.Command) bool {
		if cmd == nil || cmd.Cmd != name || len(cmd.Args) != len(args) {
			return false
		}

		for i := range args {
			if cmd.Args[i] != args[i] {
				return false
			}
		}

		return true
	})
}

// Process implements a mock commandeer.Process using testify/mock.
type Process struct {
	mock.Mock
}

var _ commandeer.Process = (*Process)(nil)

// Wait mocks waiting for the process to complete.
func (m *Process) Wait() error {
	args := m.Called()

	return args.Error(0)
}

// Result mocks returning the process result.
func (m *Process) Result() *commandeer.Result {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(*commandeer.Result)
}

// Signal mocks sending a signal to the process.
func (m *Process) Signal(sig os.Signal) error {
	args := m.Called(sig)

	return args.Error(0)
}

// Close mocks closing the process.
func (m *Process) Close() error {
	args := m.Called()

	return args.Error(0)
}

// WriteOutput simulates output for a mocked call.
// Usage: env.On("Run", ...).Run(WriteOutput(w, "output")).Return(res, nil).
func WriteOutput(w io.Writer, content string) func(mock.Arguments) {
	return func(mock.Arguments) {
		if w != nil && content != "" {
			_, _ = io.WriteString(w, content)
		}
	}
}
