package engine

import (
	"context"

	"github.com/ruffel/commandeer/fixture"
)

// Replayer serves previously recorded invocations from a fixture file.
type Replayer struct {
	cfg config
}

// NewReplayer creates a Replayer.
func NewReplayer(opts ...Option) *Replayer {
	return &Replayer{cfg: newConfig(opts)}
}

// Replay returns the earliest invocation recorded for command and args.
// ok is false on a miss, including when the fixture file does not exist.
// The fixture is never modified.
func (r *Replayer) Replay(ctx context.Context, path, command string, args []string) (inv fixture.Invocation, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return fixture.Invocation{}, false, err
	}

	store, err := fixture.Load(path)
	if err != nil {
		return fixture.Invocation{}, false, err
	}

	inv, ok = store.Find(command, args)

	event := r.cfg.logger.Debug()
	if !ok {
		event = r.cfg.logger.Warn()
	}

	event.Str("file", path).Str("key", fixture.Key(command, args)).Bool("hit", ok).Msg("replay lookup")

	return inv, ok, nil
}
