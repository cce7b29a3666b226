package local

import (
	"context"

	"github.com/ruffel/commandeer"
)

// RunCommand runs cmd to completion in a throwaway local environment and
// returns its buffered output.
func RunCommand(ctx context.Context, cmd *commandeer.Command, opts ...Option) (*commandeer.BufferedResult, error) {
	env, err := New(opts...)
	if err != nil {
		return nil, err
	}

	defer func() { _ = env.Close() }()

	return commandeer.NewExecutor(env).RunBuffered(ctx, cmd)
}
