// Package commandeertest wires command interception into Go tests.
//
// A test binary becomes its own dispatch entrypoint by calling Main from
// TestMain, which avoids building a separate binary:
//
//	func TestMain(m *testing.M) {
//		commandeertest.Main(m)
//	}
//
//	func TestDeploy(t *testing.T) {
//		s := commandeertest.Mock(t, commandeer.Replay, "git", "kubectl")
//		out, err := s.Command("git", "rev-parse", "HEAD").Output()
//		...
//	}
//
// The package also carries the behavioral contract suite every
// commandeer.Environment implementation is verified against.
package commandeertest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/ruffel/commandeer"
	"github.com/ruffel/commandeer/fileutil"
	"github.com/ruffel/commandeer/internal/cli"
	"github.com/ruffel/commandeer/session"
	"github.com/stretchr/testify/require"
)

// Main runs m, or the dispatch entrypoint when the binary was launched by
// a session launcher. Call it from TestMain.
func Main(m interface{ Run() int }) {
	if os.Getenv(session.EnvDispatch) == "1" {
		_ = os.Unsetenv(session.EnvDispatch)

		os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
	}

	if exe, err := os.Executable(); err == nil {
		session.RegisterDispatcher(session.Dispatcher{
			Path: exe,
			Env:  []string{session.EnvDispatch + "=1"},
		})
	}

	code := m.Run()

	if err := session.RemoveBuiltDispatcher(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	os.Exit(code)
}

// FixtureName returns the default fixture file name for t.
func FixtureName(t testing.TB) string {
	return "cmds_" + fileutil.SanitizeName(t.Name()) + ".json"
}

// New starts a session for t using the default fixture name. The session
// is closed when t finishes.
func New(t testing.TB, mode commandeer.Mode, opts ...session.Option) *session.Session {
	t.Helper()

	return NewNamed(t, FixtureName(t), mode, opts...)
}

// NewNamed is New with an explicit fixture file name.
func NewNamed(t testing.TB, fixtureName string, mode commandeer.Mode, opts ...session.Option) *session.Session {
	t.Helper()

	s, err := session.New(context.Background(), fixtureName, mode, opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing session: %v", err)
		}
	})

	return s
}

// Mock starts a session for t and mocks each of names.
func Mock(t testing.TB, mode commandeer.Mode, names ...string) *session.Session {
	t.Helper()

	s := New(t, mode)

	for _, name := range names {
		_, err := s.Mock(name)
		require.NoError(t, err)
	}

	return s
}

// Intercept exports the session's search path as PATH for the rest of t, so
// code that spawns programs through os/exec directly is intercepted too.
// The previous value is restored when t finishes. Like t.Setenv it cannot
// be used in parallel tests.
func Intercept(t *testing.T, s *session.Session) {
	t.Helper()

	t.Setenv("PATH", s.SearchPath())
}

// Run splits line into words like a POSIX shell and runs it through the
// session's environment. A non-zero exit is not a test failure; inspect
// the returned result.
func Run(t testing.TB, s *session.Session, line string) *commandeer.BufferedResult {
	t.Helper()

	cmd, err := commandeer.ParseCommand(line)
	require.NoError(t, err)

	res, err := s.Executor().RunBuffered(context.Background(), cmd)
	if err != nil && !commandeer.IsExitError(err) {
		require.NoError(t, err)
	}

	return res
}
