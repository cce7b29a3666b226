package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Load reads the store at path.
//
// A missing file is an empty store; its parent directories are created so a
// later Save succeeds. An empty or whitespace-only file is also an empty store.
// Anything else must be a valid fixture document.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
			return nil, fmt.Errorf("creating fixture directory for %s: %w", path, err)
		}

		return NewStore(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return NewStore(), nil
	}

	store := NewStore()
	if err := store.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}

	return store, nil
}

// Save overwrites path with the pretty-printed store. The new content is
// written to a temporary file and renamed into place, so readers never see a
// partial document.
func Save(path string, store *Store) error {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(store); err != nil {
		return fmt.Errorf("encoding fixture %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating fixture directory for %s: %w", path, err)
	}

	if err := atomicwriter.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("writing fixture %s: %w", path, err)
	}

	return nil
}
