// Package walker enumerates candidate artifact files under a store root.
package walker

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Category glob sets. A file is a candidate when its lowercased name matches
// any pattern of any category.
var categories = map[string][]string{
	"logs":         {"*.log", "*.txt", "*.out", "*log*"},
	"certificates": {"*.pem", "*.crt", "*.cer", "*.p12", "*.pfx"},
	"keys":         {"*.key", "*.pri", "*.pub", "*key*"},
	"info":         {"*.info", "*.dat", "*info*"},
	"requests":     {"*.csr", "*.req"},
}

// Walk recursively collects candidate files under root. A missing or
// non-directory root yields an empty slice, never an error; the condition is
// logged for observability. Symlinks are not followed, so a well-formed tree
// cannot loop the walk. Enumeration order follows the filesystem and is not
// guaranteed stable across calls.
func Walk(root string) []string {
	info, err := os.Stat(root)
	if err != nil {
		slog.Warn("walk root unavailable", "dir", root, "error", err)
		return nil
	}
	if !info.IsDir() {
		slog.Warn("walk root is not a directory", "dir", root)
		return nil
	}
	return walkDir(root)
}

func walkDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("failed to read directory", "dir", dir, "error", err)
		return nil
	}

	var files []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			files = append(files, walkDir(full)...)
		case entry.Type().IsRegular():
			if Classify(entry.Name()) != "" {
				files = append(files, full)
			}
		}
	}
	return files
}

// Classify returns the first category a filename belongs to, or "" when it
// matches none.
func Classify(name string) string {
	lower := strings.ToLower(name)
	// Fixed order so a file matching several categories classifies stably.
	for _, cat := range []string{"logs", "certificates", "keys", "info", "requests"} {
		for _, pattern := range categories[cat] {
			if ok, err := doublestar.Match(pattern, lower); err == nil && ok {
				return cat
			}
		}
	}
	return ""
}
