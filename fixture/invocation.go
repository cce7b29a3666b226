package fixture

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Invocation is one captured execution of an external program.
type Invocation struct {
	BinaryName string   `json:"binary_name"`
	Args       []string `json:"args"`
	Stdout     string   `json:"stdout"`
	Stderr     string   `json:"stderr"`
	ExitCode   int      `json:"exit_code"`
}

// NewInvocation builds an Invocation from raw captured output.
// Invalid UTF-8 in stdout or stderr is replaced with U+FFFD.
func NewInvocation(binary string, args []string, stdout, stderr []byte, exitCode int) Invocation {
	return Invocation{
		BinaryName: binary,
		Args:       cloneArgs(args),
		Stdout:     DecodeText(stdout),
		Stderr:     DecodeText(stderr),
		ExitCode:   exitCode,
	}
}

// Key returns the lookup key for this invocation.
func (i Invocation) Key() string {
	return Key(i.BinaryName, i.Args)
}

// Key computes the lookup key for a binary name and argument vector:
// the name, a colon, then the arguments joined by single spaces.
//
// Argument vectors that join to the same string share a key, so
// ["a b"] and ["a", "b"] collide.
func Key(binary string, args []string) string {
	return binary + ":" + strings.Join(args, " ")
}

// DecodeText converts captured bytes to text, substituting U+FFFD for
// invalid UTF-8 sequences.
func DecodeText(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}

	return string(out)
}

// cloneArgs copies args, normalising nil to an empty slice so it encodes as [].
func cloneArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)

	return out
}
