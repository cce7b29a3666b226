package commandeer

import (
	"fmt"
	"strings"
)

// Mode selects whether an intercepted command runs for real or is served from a fixture.
type Mode int

const (
	// Record runs the real program and appends its result to the fixture.
	Record Mode = iota + 1
	// Replay serves a previously recorded result without spawning anything.
	Replay
)

// String returns the subcommand name the dispatch entrypoint understands.
func (m Mode) String() string {
	switch m {
	case Record:
		return "record"
	case Replay:
		return "replay"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is Record or Replay.
func (m Mode) Valid() bool {
	return m == Record || m == Replay
}

// ParseMode converts "record" or "replay" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "record":
		return Record, nil
	case "replay":
		return Replay, nil
	default:
		return 0, fmt.Errorf("unknown mode %q: expected record or replay", s)
	}
}
