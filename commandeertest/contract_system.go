package commandeertest

import (
	"github.com/ruffel/commandeer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func systemContracts() []TestCase {
	return []TestCase{
		{
			Category: CategorySystem,
			Name:     "lookpath",
			Run: func(t T, env commandeer.Environment) {
				exec := commandeer.NewExecutor(env)

				binary := "echo"
				if env.TargetOS() == commandeer.OSWindows {
					binary = "cmd.exe"
				}

				path, err := exec.LookPath(t.Context(), binary)

				require.NoError(t, err)
				assert.NotEmpty(t, path)
			},
		},
		{
			Category: CategorySystem,
			Name:     "lookpath-missing",
			Run: func(t T, env commandeer.Environment) {
				_, err := env.LookPath(t.Context(), "commandeer-contract-no-such-binary")
				require.Error(t, err)
			},
		},
	}
}
