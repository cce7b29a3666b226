package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrMalformed is returned when a fixture file is not a valid fixture document.
var ErrMalformed = errors.New("malformed fixture")

// Store maps lookup keys to the invocations recorded under them.
// The zero value is an empty, usable store. A Store is not safe for concurrent use.
type Store struct {
	commands map[string][]Invocation
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends inv under its key. Duplicates are kept.
func (s *Store) Add(inv Invocation) {
	if s.commands == nil {
		s.commands = make(map[string][]Invocation)
	}

	inv.Args = cloneArgs(inv.Args)
	key := inv.Key()
	s.commands[key] = append(s.commands[key], inv)
}

// Find returns the earliest invocation recorded for binary and args.
// Later recordings under the same key are never returned.
func (s *Store) Find(binary string, args []string) (Invocation, bool) {
	recorded := s.commands[Key(binary, args)]
	if len(recorded) == 0 {
		return Invocation{}, false
	}

	return recorded[0], true
}

// Invocations returns a copy of everything recorded under key, oldest first.
func (s *Store) Invocations(key string) []Invocation {
	recorded := s.commands[key]
	if len(recorded) == 0 {
		return nil
	}

	out := make([]Invocation, len(recorded))
	copy(out, recorded)

	return out
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.commands))
	for k := range s.commands {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Len returns the total number of invocations across all keys.
func (s *Store) Len() int {
	n := 0
	for _, recorded := range s.commands {
		n += len(recorded)
	}

	return n
}

// MarshalJSON encodes the store as a key -> invocations object with keys in
// sorted order. Captured output is not HTML-escaped.
func (s *Store) MarshalJSON() ([]byte, error) {
	commands := s.commands
	if commands == nil {
		commands = map[string][]Invocation{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(commands); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// legacyField wraps the key mapping in files written by earlier releases.
// Real keys always contain ':' so it can never be mistaken for one.
const legacyField = "commands"

// UnmarshalJSON decodes either the bare key -> invocations object or the
// legacy {"commands": {...}} wrapper.
func (s *Store) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if inner, ok := raw[legacyField]; ok && len(raw) == 1 {
		raw = nil
		if err := json.Unmarshal(inner, &raw); err != nil {
			return fmt.Errorf("%w: field %q: %w", ErrMalformed, legacyField, err)
		}
	}

	// null decodes without error but is not a fixture.
	if raw == nil {
		return fmt.Errorf("%w: document is not an object", ErrMalformed)
	}

	commands := make(map[string][]Invocation, len(raw))

	for key, value := range raw {
		var recorded []Invocation
		if err := json.Unmarshal(value, &recorded); err != nil {
			return fmt.Errorf("%w: key %q: %w", ErrMalformed, key, err)
		}

		commands[key] = recorded
	}

	s.commands = commands

	return nil
}
