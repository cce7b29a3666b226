// Package fileutil holds path helpers shared by the fixture and session
// packages.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrInvalidName is returned for names that cannot be used as a single
// file or directory entry.
var ErrInvalidName = errors.New("invalid name")

// CheckPathTraversal validates that target is a child of root using local filesystem
// path conventions (filepath.Abs, os.PathSeparator). Returns an error if target
// escapes the root directory.
func CheckPathTraversal(root, target string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("illegal file path: cannot resolve root %s: %w", root, err)
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("illegal file path: cannot resolve target %s: %w", target, err)
	}

	if absRoot == absTarget {
		return nil
	}

	if !strings.HasPrefix(absTarget, absRoot+string(os.PathSeparator)) {
		return fmt.Errorf("illegal file path: %s is not within %s", target, root)
	}

	return nil
}

// CheckName validates that name is a single path element: non-empty, not
// "." or "..", and free of separators and NUL bytes.
func CheckName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}

	return nil
}

// JoinChild joins name onto root and verifies the result stays inside root.
func JoinChild(root, name string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}

	target := filepath.Join(root, name)
	if err := CheckPathTraversal(root, target); err != nil {
		return "", err
	}

	return target, nil
}

// SanitizeName maps s to a string usable as a file name. Runs of characters
// other than letters, digits, '-', '_' and '.' become a single underscore.
func SanitizeName(s string) string {
	var b strings.Builder

	underscore := false

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)

			underscore = false

			continue
		}

		if !underscore {
			b.WriteByte('_')

			underscore = true
		}
	}

	out := strings.Trim(b.String(), "_.")
	if out == "" {
		return "_"
	}

	return out
}
