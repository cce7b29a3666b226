package engine

import (
	"context"
	"fmt"

	"github.com/ruffel/commandeer"
	"github.com/ruffel/commandeer/fixture"
	"github.com/ruffel/commandeer/providers/local"
)

// Recorder runs real programs and appends their results to a fixture file.
type Recorder struct {
	cfg config
}

// NewRecorder creates a Recorder.
func NewRecorder(opts ...Option) *Recorder {
	return &Recorder{cfg: newConfig(opts)}
}

// Record spawns command with args, waits for it to finish and appends the
// captured invocation to the fixture at path.
//
// A non-zero exit is a normal result and is recorded. Failing to spawn the
// program at all (not found, permission denied) is returned as an error and
// leaves the fixture untouched.
func (r *Recorder) Record(ctx context.Context, path, command string, args []string) (fixture.Invocation, error) {
	log := r.cfg.logger.With().Str("file", path).Str("command", command).Strs("args", args).Logger()

	var (
		store *fixture.Store
		err   error
	)

	if r.cfg.truncate {
		log.Debug().Msg("truncating fixture")

		store = fixture.NewStore()
	} else if store, err = fixture.Load(path); err != nil {
		return fixture.Invocation{}, err
	}

	env, closeEnv, err := r.environment()
	if err != nil {
		return fixture.Invocation{}, err
	}

	defer closeEnv()

	log.Debug().Msg("recording command")

	cmd := commandeer.Cmd(command).Args(args...).Build()

	res, err := commandeer.NewExecutor(env).RunBuffered(ctx, cmd)
	if err != nil && !commandeer.IsExitError(err) {
		return fixture.Invocation{}, fmt.Errorf("recording %q: %w", cmd.String(), err)
	}

	// A process killed by cancellation is not a result worth keeping.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fixture.Invocation{}, fmt.Errorf("recording %q: %w", cmd.String(), ctxErr)
	}

	if res.Signaled() {
		log.Warn().Msg("command terminated by a signal, recording exit code -1")
	}

	inv := fixture.NewInvocation(command, args, res.Stdout, res.Stderr, res.ExitCode)

	store.Add(inv)

	if err := fixture.Save(path, store); err != nil {
		return fixture.Invocation{}, err
	}

	log.Info().Int("exit_code", inv.ExitCode).Int("recordings", store.Len()).Msg("recorded invocation")

	return inv, nil
}

func (r *Recorder) environment() (commandeer.Environment, func(), error) {
	if r.cfg.env != nil {
		return r.cfg.env, func() {}, nil
	}

	env, err := local.New()
	if err != nil {
		return nil, nil, err
	}

	return env, func() { _ = env.Close() }, nil
}
