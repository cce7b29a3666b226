package local

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// lookPathIn is exec.LookPath over an explicit list instead of the process PATH.
// Relative entries are skipped, as exec.LookPath refuses them too. A file
// containing a separator names a path and is checked directly.
func lookPathIn(file, path string) (string, error) {
	if strings.ContainsAny(file, `/\`) {
		return exec.LookPath(file)
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" || !filepath.IsAbs(dir) {
			continue
		}

		for _, candidate := range candidates(filepath.Join(dir, file)) {
			if isExecutable(candidate) {
				return candidate, nil
			}
		}
	}

	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}
