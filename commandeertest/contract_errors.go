package commandeertest

import (
	"github.com/ruffel/commandeer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	runExitErrorCode  = 13
	waitExitErrorCode = 23
)

func errorContracts() []TestCase {
	return []TestCase{
		runNonZeroReturnsExitErrorContract(),
		startWaitNonZeroReturnsExitErrorContract(),
		missingBinaryIsTransportErrorContract(),
	}
}

func runNonZeroReturnsExitErrorContract() TestCase {
	return TestCase{
		Category:    CategoryErrors,
		Name:        "run-nonzero-returns-exiterror",
		Description: "Run non-zero failures must return *commandeer.ExitError with a populated result",
		Run: func(t T, env commandeer.Environment) {
			res, err := env.Run(t.Context(), env.TargetOS().ShellCommand(exitScript(runExitErrorCode)))
			require.Error(t, err)

			var exitErr *commandeer.ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, runExitErrorCode, exitErr.ExitCode)

			require.NotNil(t, res)
			assert.Equal(t, runExitErrorCode, res.ExitCode)
		},
	}
}

func startWaitNonZeroReturnsExitErrorContract() TestCase {
	return TestCase{
		Category:    CategoryErrors,
		Name:        "start-wait-nonzero-returns-exiterror",
		Description: "Wait non-zero failures must return *commandeer.ExitError",
		Run: func(t T, env commandeer.Environment) {
			process, err := env.Start(t.Context(), env.TargetOS().ShellCommand(exitScript(waitExitErrorCode)))
			require.NoError(t, err)
			require.NotNil(t, process)

			defer func() {
				_ = process.Close()
			}()

			err = process.Wait()
			require.Error(t, err)

			var exitErr *commandeer.ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, waitExitErrorCode, exitErr.ExitCode)
		},
	}
}

func missingBinaryIsTransportErrorContract() TestCase {
	return TestCase{
		Category:    CategoryErrors,
		Name:        "missing-binary-transport-error",
		Description: "A program that cannot be spawned is a *commandeer.TransportError, never an exit code",
		Run: func(t T, env commandeer.Environment) {
			_, err := env.Run(t.Context(), commandeer.NewCommand("commandeer-contract-no-such-binary"))
			require.Error(t, err)

			var transportErr *commandeer.TransportError
			require.ErrorAs(t, err, &transportErr)
			assert.False(t, commandeer.IsExitError(err))
		},
	}
}
