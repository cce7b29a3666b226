package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ruffel/commandeer"
	"github.com/ruffel/commandeer/fixture"
)

// Exit codes produced by Dispatch itself rather than by a recorded program.
const (
	// ExitCodeMiss is returned when replay finds no matching recording.
	ExitCodeMiss = 1
	// ExitCodeFatal is used by the CLI when Dispatch returns an error.
	ExitCodeFatal = 2
)

// DefaultFile is the fixture used when none is given.
const DefaultFile = "recordings.json"

// Request describes one intercepted invocation.
type Request struct {
	Mode     commandeer.Mode
	File     string
	Command  string
	Args     []string // passed through verbatim
	Truncate bool     // record only
}

// Validate checks that the request can be dispatched.
func (r Request) Validate() error {
	if !r.Mode.Valid() {
		return fmt.Errorf("invalid mode %s", r.Mode)
	}

	if strings.TrimSpace(r.Command) == "" {
		return errors.New("command name cannot be empty")
	}

	if r.Truncate && r.Mode != commandeer.Record {
		return errors.New("truncate is only valid when recording")
	}

	return nil
}

func (r Request) file() string {
	if r.File == "" {
		return DefaultFile
	}

	return r.File
}

// Dispatch records or replays req, writes the captured stdout and stderr to
// the given writers and returns the exit code the caller should terminate with.
//
// A replay miss writes a diagnostic to stderr and returns ExitCodeMiss with a
// nil error. Errors are fatal conditions: I/O, malformed fixtures, spawn failures.
func Dispatch(ctx context.Context, req Request, stdout, stderr io.Writer, opts ...Option) (int, error) {
	if err := req.Validate(); err != nil {
		return ExitCodeFatal, err
	}

	var (
		inv fixture.Invocation
		err error
	)

	switch req.Mode {
	case commandeer.Record:
		opts = append(opts, WithTruncate(req.Truncate))
		inv, err = NewRecorder(opts...).Record(ctx, req.file(), req.Command, req.Args)
	case commandeer.Replay:
		var ok bool

		inv, ok, err = NewReplayer(opts...).Replay(ctx, req.file(), req.Command, req.Args)
		if err == nil && !ok {
			_, err = fmt.Fprintf(stderr, "No recorded invocation found for: %s %s\n", req.Command, strings.Join(req.Args, " "))
			if err != nil {
				return ExitCodeFatal, err
			}

			return ExitCodeMiss, nil
		}
	}

	if err != nil {
		return ExitCodeFatal, err
	}

	if err := Output(inv, stdout, stderr); err != nil {
		return ExitCodeFatal, err
	}

	return inv.ExitCode, nil
}

// Output reproduces the captured streams of inv.
func Output(inv fixture.Invocation, stdout, stderr io.Writer) error {
	if _, err := io.WriteString(stdout, inv.Stdout); err != nil {
		return fmt.Errorf("writing stdout: %w", err)
	}

	if _, err := io.WriteString(stderr, inv.Stderr); err != nil {
		return fmt.Errorf("writing stderr: %w", err)
	}

	return nil
}
