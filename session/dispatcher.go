package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/ruffel/commandeer"
	"github.com/ruffel/commandeer/providers/local"
)

// Environment variables understood when resolving a dispatcher.
const (
	// EnvBinary names a prebuilt dispatch entrypoint.
	EnvBinary = "COMMANDEER_BIN"
	// EnvDispatch marks a self-dispatching test binary invocation.
	EnvDispatch = "COMMANDEER_DISPATCH"
)

// DispatchPackage is built when no dispatcher is otherwise available.
const DispatchPackage = "github.com/ruffel/commandeer/cmd/commandeer"

// Dispatcher is an executable that accepts the record and replay
// subcommands of the dispatch entrypoint.
type Dispatcher struct {
	Path string
	Env  []string // KEY=VALUE pairs exported by every launcher before exec
}

// Validate checks that d names an absolute path.
func (d Dispatcher) Validate() error {
	if d.Path == "" {
		return errors.New("dispatcher path cannot be empty")
	}

	if !filepath.IsAbs(d.Path) {
		return fmt.Errorf("dispatcher path %q is not absolute", d.Path)
	}

	return nil
}

var (
	dispatchMu sync.Mutex
	registered *Dispatcher
	built      *Dispatcher
	builtDir   string
)

// RegisterDispatcher makes d the process-wide default dispatcher.
// commandeertest.Main registers the running test binary this way.
func RegisterDispatcher(d Dispatcher) {
	dispatchMu.Lock()
	defer dispatchMu.Unlock()

	registered = &d
}

// ResolveDispatcher returns, in order of preference: the registered
// dispatcher, the binary named by COMMANDEER_BIN, or a dispatcher built
// from DispatchPackage. The build runs at most once per process and its
// output stays on disk until RemoveBuiltDispatcher is called.
func ResolveDispatcher(ctx context.Context, logger zerolog.Logger) (Dispatcher, error) {
	dispatchMu.Lock()
	defer dispatchMu.Unlock()

	if registered != nil {
		return *registered, nil
	}

	if bin := os.Getenv(EnvBinary); bin != "" {
		abs, err := filepath.Abs(bin)
		if err != nil {
			return Dispatcher{}, fmt.Errorf("resolving %s: %w", EnvBinary, err)
		}

		return Dispatcher{Path: abs}, nil
	}

	if built != nil {
		return *built, nil
	}

	d, dir, err := buildDispatcher(ctx, logger)
	if err != nil {
		return Dispatcher{}, err
	}

	built, builtDir = &d, dir

	return d, nil
}

// RemoveBuiltDispatcher deletes the dispatcher built by ResolveDispatcher,
// if any. Sessions resolved afterwards trigger a fresh build.
// commandeertest.Main calls it once the tests have run.
func RemoveBuiltDispatcher() error {
	dispatchMu.Lock()
	defer dispatchMu.Unlock()

	if builtDir == "" {
		return nil
	}

	dir := builtDir
	built, builtDir = nil, ""

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing dispatcher build directory: %w", err)
	}

	return nil
}

// buildDispatcher compiles DispatchPackage into a fresh temporary directory
// and returns the dispatcher along with that directory.
func buildDispatcher(ctx context.Context, logger zerolog.Logger) (Dispatcher, string, error) {
	dir, err := os.MkdirTemp("", "commandeer-bin-")
	if err != nil {
		return Dispatcher{}, "", fmt.Errorf("creating build directory: %w", err)
	}

	out := filepath.Join(dir, "commandeer")
	if commandeer.DetectLocalOS() == commandeer.OSWindows {
		out += ".exe"
	}

	cmd := commandeer.Cmd("go").Args("build", "-o", out, DispatchPackage).Build()

	res, err := local.RunCommand(ctx, cmd)
	if err != nil {
		var stderr []byte
		if res != nil {
			stderr = res.Stderr
		}

		_ = os.RemoveAll(dir)

		return Dispatcher{}, "", fmt.Errorf("building dispatcher: %w: %s", err, stderr)
	}

	logger.Debug().Str("path", out).Msg("built dispatcher")

	return Dispatcher{Path: out}, dir, nil
}
