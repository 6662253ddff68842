package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ExpandHome resolves a leading "~/" against the home directory and cleans
// relative paths. Absolute paths are returned unchanged.
func ExpandHome(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(UserHomeDir(), rest)
	}
	return filepath.Clean(path)
}
