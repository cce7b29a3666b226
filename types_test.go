package commandeer

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewCommand("git", "status").Validate())

	for _, name := range []string{"", "   "} {
		err := NewCommand(name).Validate()
		require.Error(t, err, "%q", name)
		assert.Contains(t, err.Error(), "cannot be empty")
	}
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cmd  *Command
		want string
	}{
		"bare":             {NewCommand("date"), "date"},
		"plain args":       {NewCommand("git", "log", "-n", "3"), "git log -n 3"},
		"embedded space":   {NewCommand("echo", "hello world"), `echo "hello world"`},
		"empty arg":        {NewCommand("printf", ""), `printf ""`},
		"single quote":     {NewCommand("sh", "-c", "echo 'x'"), `sh -c "echo 'x'"`},
		"double quote":     {NewCommand("echo", `say "hi"`), `echo "say \"hi\""`},
		"hyphens verbatim": {NewCommand("git", "--no-pager", "--"), "git --no-pager --"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.cmd.String())
		})
	}
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	t.Run("shell words", func(t *testing.T) {
		t.Parallel()

		cmd, err := ParseCommand(`  git commit -m "first commit"   --allow-empty `)
		require.NoError(t, err)
		assert.Equal(t, "git", cmd.Cmd)
		assert.Equal(t, []string{"commit", "-m", "first commit", "--allow-empty"}, cmd.Args)
	})

	t.Run("no args is an empty slice", func(t *testing.T) {
		t.Parallel()

		cmd, err := ParseCommand("uptime")
		require.NoError(t, err)
		assert.Equal(t, &Command{Cmd: "uptime", Args: []string{}}, cmd)
	})

	t.Run("round trips through String", func(t *testing.T) {
		t.Parallel()

		orig := NewCommand("echo", "a b", "c")

		cmd, err := ParseCommand(orig.String())
		require.NoError(t, err)
		assert.Equal(t, orig.Args, cmd.Args)
	})

	for _, line := range []string{"", "   ", `echo "unterminated`} {
		_, err := ParseCommand(line)
		assert.Error(t, err, "%q", line)
	}
}

func TestResult_Signaled(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Result{ExitCode: -1}).Signaled())

	for _, code := range []int{0, 1, 137, 255} {
		assert.False(t, (&Result{ExitCode: code}).Signaled(), code)
	}
}

func TestTargetOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		os        TargetOS
		name      string
		shell     []string
		separator string
	}{
		{OSLinux, "linux", []string{"sh", "-c", "true"}, ":"},
		{OSDarwin, "darwin", []string{"sh", "-c", "true"}, ":"},
		{OSWindows, "windows", []string{"cmd", "/d", "/c", "true"}, ";"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.name, tt.os.String())
			assert.Equal(t, tt.separator, tt.os.ListSeparator())
			assert.Equal(t, tt.os, ParseTargetOS(tt.name))

			shell := tt.os.ShellCommand("true")
			assert.Equal(t, tt.shell, append([]string{shell.Cmd}, shell.Args...))
		})
	}

	assert.Equal(t, "unknown", OSUnknown.String())
	assert.Equal(t, OSUnknown, ParseTargetOS("plan9"))
	assert.Equal(t, OSDarwin, ParseTargetOS("macos"))
	assert.Equal(t, OSWindows, ParseTargetOS("windows_nt"))
}

func TestDetectLocalOS(t *testing.T) {
	t.Parallel()

	want := map[string]TargetOS{"linux": OSLinux, "darwin": OSDarwin, "windows": OSWindows}[runtime.GOOS]
	assert.Equal(t, want, DetectLocalOS())
}

func TestMode(t *testing.T) {
	t.Parallel()

	for _, m := range []Mode{Record, Replay} {
		assert.True(t, m.Valid(), m)

		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	assert.False(t, Mode(0).Valid())
	assert.Equal(t, "mode(7)", Mode(7).String())

	m, err := ParseMode(" RECORD ")
	require.NoError(t, err)
	assert.Equal(t, Record, m)

	_, err = ParseMode("rewind")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestErrors(t *testing.T) {
	t.Parallel()

	t.Run("exit error", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("exit status 4")
		e := &ExitError{Command: NewCommand("make", "test"), ExitCode: 4, Cause: cause}

		assert.Equal(t, `command "make test" exited with code 4`, e.Error())
		assert.Equal(t, "command exited with code 4", (&ExitError{ExitCode: 4}).Error())
		assert.ErrorIs(t, e, cause)
		assert.True(t, IsExitError(fmt.Errorf("outer: %w", e)))
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("executable file not found")
		e := &TransportError{Command: NewCommand("nope", "x"), Err: cause}

		assert.Equal(t, `transport error executing "nope x": executable file not found`, e.Error())
		assert.Equal(t, "transport error: executable file not found", (&TransportError{Err: cause}).Error())
		assert.ErrorIs(t, e, cause)
		assert.False(t, IsExitError(e))
	})

	assert.False(t, IsExitError(nil))
	assert.False(t, IsExitError(ErrEnvironmentClosed))
}
