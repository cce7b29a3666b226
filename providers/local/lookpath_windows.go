//go:build windows

package local

import (
	"os"
	"path/filepath"
	"strings"
)

func candidates(path string) []string {
	exts := filepath.SplitList(os.Getenv("PATHEXT"))
	if len(exts) == 0 {
		exts = []string{".com", ".exe", ".bat", ".cmd"}
	}

	out := make([]string, 0, len(exts)+1)
	if filepath.Ext(path) != "" {
		out = append(out, path)
	}

	for _, ext := range exts {
		out = append(out, path+strings.ToLower(ext))
	}

	return out
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !info.IsDir()
}
