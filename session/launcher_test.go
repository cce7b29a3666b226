package session

import (
	"path/filepath"
	"testing"

	"github.com/ruffel/commandeer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLauncher_POSIX(t *testing.T) {
	t.Parallel()

	l := launcher{
		name:       "git",
		mode:       commandeer.Record,
		fixture:    "/work/testcmds/cmds_it's.json",
		searchPath: "/usr/bin:/bin",
		dispatcher: Dispatcher{Path: "/opt/commandeer", Env: []string{"COMMANDEER_DISPATCH=1"}},
	}

	want := "#!/bin/sh\n" +
		"PATH='/usr/bin:/bin'; export PATH\n" +
		"COMMANDEER_DISPATCH='1'; export COMMANDEER_DISPATCH\n" +
		`exec '/opt/commandeer' record --file '/work/testcmds/cmds_it'\''s.json' --command 'git' -- "$@"` + "\n"

	assert.Equal(t, want, string(l.render(commandeer.OSLinux)))
	assert.Equal(t, "git", l.fileName(commandeer.OSDarwin))
}

func TestLauncher_Cmd(t *testing.T) {
	t.Parallel()

	l := launcher{
		name:       "git",
		mode:       commandeer.Replay,
		fixture:    `C:\work\testcmds\100%.json`,
		searchPath: `C:\Windows\system32;C:\Git\bin`,
		dispatcher: Dispatcher{Path: `C:\bin\commandeer.exe`},
	}

	want := "@echo off\r\n" +
		"setlocal\r\n" +
		`set "PATH=C:\Windows\system32;C:\Git\bin"` + "\r\n" +
		`"C:\bin\commandeer.exe" replay --file "C:\work\testcmds\100%%.json" --command "git" -- %*` + "\r\n" +
		"exit /b %ERRORLEVEL%\r\n"

	assert.Equal(t, want, string(l.render(commandeer.OSWindows)))
	assert.Equal(t, "git.cmd", l.fileName(commandeer.OSWindows))
}

func TestShellQuote(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":           "''",
		"plain":      "'plain'",
		"with space": "'with space'",
		"it's":       `'it'\''s'`,
		"$HOME":      "'$HOME'",
	}

	for in, want := range tests {
		assert.Equal(t, want, shellQuote(in), in)
	}
}

func TestResolveFixture(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	got, err := resolveFixture(root, "cmds_TestX.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FixtureSubdir, "cmds_TestX.json"), got)

	for _, bad := range []string{"", "..", "../escape.json", "nested/cmds.json"} {
		_, err := resolveFixture(root, bad)
		require.ErrorIs(t, err, ErrInvalidName, bad)
	}
}

func TestDispatcher_Validate(t *testing.T) {
	t.Parallel()

	abs, err := filepath.Abs("commandeer")
	require.NoError(t, err)

	require.NoError(t, Dispatcher{Path: abs}.Validate())
	require.Error(t, Dispatcher{}.Validate())
	require.Error(t, Dispatcher{Path: "commandeer"}.Validate())
}
