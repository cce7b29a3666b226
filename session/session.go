package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/ruffel/commandeer"
	"github.com/ruffel/commandeer/fileutil"
	"github.com/ruffel/commandeer/fixture"
	"github.com/ruffel/commandeer/providers/local"
)

// FixtureSubdir is the project-local directory holding fixture files.
const FixtureSubdir = "testcmds"

var (
	// ErrClosed is returned by operations on a closed Session.
	ErrClosed = errors.New("session closed")
	// ErrInvalidName is returned for fixture or command names that are not
	// a single path element.
	ErrInvalidName = fileutil.ErrInvalidName
)

// Session intercepts a set of command names for one test.
type Session struct {
	mode         commandeer.Mode
	fixture      string
	dir          string
	originalPath string
	target       commandeer.TargetOS
	dispatcher   Dispatcher
	env          *local.Environment
	logger       zerolog.Logger

	mu     sync.Mutex
	mocked []string
	closed bool
}

// New starts a session recording to or replaying from the fixture named
// fixtureName in the FixtureSubdir of the project directory.
//
// The original search path is captured here, once. In record mode with
// WithTruncate the fixture is reset before New returns.
func New(ctx context.Context, fixtureName string, mode commandeer.Mode, opts ...Option) (*Session, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid mode %s", mode)
	}

	cfg := newConfig(opts)

	fixturePath, err := resolveFixture(cfg.fixtureDir, fixtureName)
	if err != nil {
		return nil, err
	}

	dispatcher, err := dispatcherFor(ctx, cfg)
	if err != nil {
		return nil, err
	}

	originalPath := cfg.searchPath
	if !cfg.hasSearchPath {
		originalPath = os.Getenv("PATH")
	}

	if mode == commandeer.Record && cfg.truncate {
		if err := fixture.Save(fixturePath, fixture.NewStore()); err != nil {
			return nil, fmt.Errorf("truncating fixture: %w", err)
		}
	}

	dir, err := os.MkdirTemp("", "commandeer-")
	if err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}

	s := &Session{
		mode:         mode,
		fixture:      fixturePath,
		dir:          dir,
		originalPath: originalPath,
		target:       cfg.targetOS,
		dispatcher:   dispatcher,
		logger:       cfg.logger.With().Str("fixture", fixturePath).Stringer("mode", mode).Logger(),
	}

	s.env, err = local.New(local.WithSearchPath(s.SearchPath()), local.WithTargetOS(cfg.targetOS))
	if err != nil {
		_ = os.RemoveAll(dir)

		return nil, err
	}

	s.logger.Debug().Str("dir", dir).Msg("session started")

	return s, nil
}

func resolveFixture(projectDir, name string) (string, error) {
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving project directory: %w", err)
		}

		projectDir = wd
	}

	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("resolving project directory: %w", err)
	}

	path, err := fileutil.JoinChild(filepath.Join(projectDir, FixtureSubdir), name)
	if err != nil {
		return "", fmt.Errorf("fixture name: %w", err)
	}

	return path, nil
}

func dispatcherFor(ctx context.Context, cfg config) (Dispatcher, error) {
	if cfg.dispatcher != nil {
		return *cfg.dispatcher, cfg.dispatcher.Validate()
	}

	d, err := ResolveDispatcher(ctx, cfg.logger)
	if err != nil {
		return Dispatcher{}, err
	}

	return d, d.Validate()
}

// Mock writes a launcher for name into the session directory and returns
// its path. Mocking the same name twice rewrites the launcher.
func (s *Session) Mock(name string) (string, error) {
	if err := fileutil.CheckName(name); err != nil {
		return "", fmt.Errorf("command name: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}

	l := launcher{
		name:       name,
		mode:       s.mode,
		fixture:    s.fixture,
		searchPath: s.originalPath,
		dispatcher: s.dispatcher,
	}

	path, err := fileutil.JoinChild(s.dir, l.fileName(s.target))
	if err != nil {
		return "", err
	}

	//nolint:gosec // launchers must be executable
	if err := os.WriteFile(path, l.render(s.target), 0o755); err != nil {
		return "", fmt.Errorf("writing launcher for %q: %w", name, err)
	}

	if !slices.Contains(s.mocked, name) {
		s.mocked = append(s.mocked, name)
	}

	s.logger.Debug().Str("command", name).Str("artifact", path).Msg("mocked command")

	return path, nil
}

// Fixture returns the absolute path of the fixture file.
func (s *Session) Fixture() string { return s.fixture }

// Dir returns the directory holding the launchers.
func (s *Session) Dir() string { return s.dir }

// Mode returns the session mode.
func (s *Session) Mode() commandeer.Mode { return s.mode }

// OriginalPath returns the search path captured when the session started.
func (s *Session) OriginalPath() string { return s.originalPath }

// SearchPath returns the launcher directory followed by the original path.
func (s *Session) SearchPath() string {
	if s.originalPath == "" {
		return s.dir
	}

	return s.dir + s.target.ListSeparator() + s.originalPath
}

// Environ returns the current process environment with PATH replaced by
// SearchPath, suitable for exec.Cmd.Env.
func (s *Session) Environ() []string {
	out := make([]string, 0, len(os.Environ())+1)

	for _, kv := range os.Environ() {
		k, _, _ := strings.Cut(kv, "=")
		if isPathVar(k, s.target) {
			continue
		}

		out = append(out, kv)
	}

	return append(out, "PATH="+s.SearchPath())
}

func isPathVar(key string, target commandeer.TargetOS) bool {
	if target == commandeer.OSWindows {
		return strings.EqualFold(key, "PATH")
	}

	return key == "PATH"
}

// Environment returns a local environment whose children resolve commands
// through SearchPath. It is closed with the session.
func (s *Session) Environment() commandeer.Environment { return s.env }

// Executor wraps Environment.
func (s *Session) Executor() *commandeer.Executor {
	return commandeer.NewExecutor(s.env)
}

// Command is exec.Command with name resolved through SearchPath and the
// child environment set to Environ. Resolution failures surface from Run
// or Start, as they do for exec.Command.
func (s *Session) Command(name string, args ...string) *exec.Cmd {
	cmd := exec.Command(name, args...)
	cmd.Env = s.Environ()

	if path, err := s.env.LookPath(context.Background(), name); err == nil {
		cmd.Path = path
		cmd.Err = nil
	} else if !strings.ContainsAny(name, `/\`) {
		cmd.Err = err
	}

	return cmd
}

// Mocked returns the mocked command names in the order they were added.
func (s *Session) Mocked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.mocked)
}

// Close removes the launcher directory. The fixture file is kept.
// Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	envErr := s.env.Close()

	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("removing session directory: %w", err)
	}

	s.logger.Debug().Msg("session closed")

	return envErr
}
