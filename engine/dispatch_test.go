package engine

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ruffel/commandeer"
	"github.com/ruffel/commandeer/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dispatch(t *testing.T, req Request) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	code, err := Dispatch(context.Background(), req, &stdout, &stderr)
	require.NoError(t, err)

	return code, stdout.String(), stderr.String()
}

func TestDispatch_EchoScenario(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("echo is a shell builtin on Windows")
	}

	path := filepath.Join(t.TempDir(), "testcmds", "cmds_echo.json")

	code, out, errOut := dispatch(t, Request{Mode: commandeer.Record, File: path, Command: "echo", Args: []string{"hello"}})
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", out)
	assert.Empty(t, errOut)

	store, err := fixture.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo:hello"}, store.Keys())

	recorded, ok := store.Find("echo", []string{"hello"})
	require.True(t, ok)
	assert.Equal(t, fixture.Invocation{BinaryName: "echo", Args: []string{"hello"}, Stdout: "hello\n"}, recorded)

	code, out, errOut = dispatch(t, Request{Mode: commandeer.Replay, File: path, Command: "echo", Args: []string{"hello"}})
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", out)
	assert.Empty(t, errOut)

	code, out, errOut = dispatch(t, Request{Mode: commandeer.Replay, File: path, Command: "echo", Args: []string{"goodbye"}})
	assert.Equal(t, ExitCodeMiss, code)
	assert.Empty(t, out)
	assert.Equal(t, "No recorded invocation found for: echo goodbye\n", errOut)
}

func TestDispatch_RoundTrip(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "cmds.json")
	args := []string{"-c", "echo to-out; echo to-err >&2; exit 42", "--not-a-flag"}

	recCode, recOut, recErr := dispatch(t, Request{Mode: commandeer.Record, File: path, Command: "sh", Args: args})
	repCode, repOut, repErr := dispatch(t, Request{Mode: commandeer.Replay, File: path, Command: "sh", Args: args})

	assert.Equal(t, 42, recCode)
	assert.Equal(t, recCode, repCode)
	assert.Equal(t, "to-out\n", recOut)
	assert.Equal(t, recOut, repOut)
	assert.Equal(t, "to-err\n", recErr)
	assert.Equal(t, recErr, repErr)
}

func TestDispatch_Truncate(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}

	path := seed(t,
		fixture.Invocation{BinaryName: "old", Args: []string{"1"}},
		fixture.Invocation{BinaryName: "old", Args: []string{"2"}},
	)

	_, _, _ = dispatch(t, Request{Mode: commandeer.Record, File: path, Command: "true"})

	store, err := fixture.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len(), "recording without truncate appends")

	_, _, _ = dispatch(t, Request{Mode: commandeer.Record, File: path, Command: "true", Truncate: true})

	store, err = fixture.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"true:"}, store.Keys())
	assert.Equal(t, 1, store.Len())
}

func TestDispatch_MissOnMissingFixture(t *testing.T) {
	t.Parallel()

	code, out, errOut := dispatch(t, Request{
		Mode:    commandeer.Replay,
		File:    filepath.Join(t.TempDir(), "absent.json"),
		Command: "git",
		Args:    []string{"status", "--short"},
	})

	assert.Equal(t, ExitCodeMiss, code)
	assert.Empty(t, out)
	assert.Equal(t, "No recorded invocation found for: git status --short\n", errOut)
}

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{"valid record", Request{Mode: commandeer.Record, Command: "git"}, ""},
		{"valid replay", Request{Mode: commandeer.Replay, Command: "git"}, ""},
		{"missing mode", Request{Command: "git"}, "invalid mode"},
		{"missing command", Request{Mode: commandeer.Replay}, "command name cannot be empty"},
		{"truncate on replay", Request{Mode: commandeer.Replay, Command: "git", Truncate: true}, "only valid when recording"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Equal(t, DefaultFile, Request{}.file())
}

func TestDispatch_FatalErrors(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	code, err := Dispatch(context.Background(), Request{Mode: commandeer.Record, File: filepath.Join(t.TempDir(), "x.json"), Command: "commandeer-no-such-binary"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Equal(t, ExitCodeFatal, code)
	assert.Empty(t, stdout.String())

	code, err = Dispatch(context.Background(), Request{Command: "git"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Equal(t, ExitCodeFatal, code)
}
