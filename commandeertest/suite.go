package commandeertest

import (
	"context"
	"fmt"
	"testing"

	"github.com/ruffel/commandeer"
)

// Standard categories for grouping contracts.
const (
	CategoryCore        = "core"
	CategoryEnvironment = "environment"
	CategorySystem      = "system"
	CategoryErrors      = "errors"
)

// T is the minimal interface required for testify/assert and require.
type T interface {
	Errorf(format string, args ...any)
	FailNow()
	Skipf(format string, args ...any)
	Context() context.Context
	TempDir() string
	Name() string
}

// TestCase defines a single behavioral contract requirement.
type TestCase struct {
	Category    string
	Name        string
	Description string
	Prereq      func(t T, env commandeer.Environment) (ok bool, reason string)
	Run         func(t T, env commandeer.Environment)
}

// ID returns the stable, globally unique contract identifier.
func (tc TestCase) ID() string {
	return fmt.Sprintf("%s/%s", tc.Category, tc.Name)
}

// AllContracts returns every contract an Environment must satisfy.
func AllContracts() []TestCase {
	var contracts []TestCase

	contracts = append(contracts, coreContracts()...)
	contracts = append(contracts, environmentContracts()...)
	contracts = append(contracts, systemContracts()...)
	contracts = append(contracts, errorContracts()...)

	return contracts
}

// VerifyEnvironment runs AllContracts, each against a fresh environment
// from newEnv. Several contracts close the environment they are given.
func VerifyEnvironment(t *testing.T, newEnv func(t *testing.T) commandeer.Environment) {
	t.Helper()

	for _, tc := range AllContracts() {
		t.Run(tc.ID(), func(t *testing.T) {
			env := newEnv(t)

			t.Cleanup(func() { _ = env.Close() })

			if tc.Prereq != nil {
				ok, reason := tc.Prereq(t, env)
				if !ok {
					t.Skipf("prereq unmet: %s", reason)
				}
			}

			tc.Run(t, env)
		})
	}
}

func posixOnly(_ T, env commandeer.Environment) (bool, string) {
	if env.TargetOS() == commandeer.OSWindows {
		return false, "needs POSIX utilities"
	}

	return true, ""
}

func exitScript(code int) string {
	return fmt.Sprintf("exit %d", code)
}
