package commandeertest

import (
	"bytes"
	"strings"

	"github.com/ruffel/commandeer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coreContracts() []TestCase {
	return []TestCase{
		{
			Category: CategoryCore,
			Name:     "simple-echo",
			Run: func(t T, env commandeer.Environment) {
				exec := commandeer.NewExecutor(env)
				result, err := exec.RunBuffered(t.Context(), commandeer.NewCommand("echo", "hello"))
				require.NoError(t, err)
				require.NotNil(t, result)

				assert.Equal(t, "hello", strings.TrimSpace(string(result.Stdout)))
				assert.Equal(t, 0, result.ExitCode)
			},
		},
		{
			Category:    CategoryCore,
			Name:        "stdin-passthrough",
			Description: "Command.Stdin reaches the child",
			Prereq:      posixOnly,
			Run: func(t T, env commandeer.Environment) {
				var out bytes.Buffer

				cmd := commandeer.NewCommand("cat")
				cmd.Stdin = strings.NewReader("piped input")
				cmd.Stdout = &out

				_, err := env.Run(t.Context(), cmd)
				require.NoError(t, err)
				assert.Equal(t, "piped input", out.String())
			},
		},
		{
			Category:    CategoryCore,
			Name:        "separate-streams",
			Description: "Stdout and stderr are captured independently",
			Run: func(t T, env commandeer.Environment) {
				exec := commandeer.NewExecutor(env)

				res, err := exec.RunShell(t.Context(), "echo to-out && echo to-err 1>&2")
				require.NoError(t, err)

				assert.Equal(t, "to-out", strings.TrimSpace(string(res.Stdout)))
				assert.Equal(t, "to-err", strings.TrimSpace(string(res.Stderr)))
			},
		},
		{
			Category:    CategoryCore,
			Name:        "command-env",
			Description: "Command.Env entries are visible to the child",
			Prereq:      posixOnly,
			Run: func(t T, env commandeer.Environment) {
				cmd := env.TargetOS().ShellCommand(`printf %s "$COMMANDEER_CONTRACT"`)
				cmd.Env = []string{"COMMANDEER_CONTRACT=visible"}

				res, err := commandeer.NewExecutor(env).RunBuffered(t.Context(), cmd)
				require.NoError(t, err)
				assert.Equal(t, "visible", string(res.Stdout))
			},
		},
	}
}
