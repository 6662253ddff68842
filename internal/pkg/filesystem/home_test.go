package filesystem

import (
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	tests := map[string]string{
		"~/conf/a.yaml": filepath.Join(home, "conf", "a.yaml"),
		"/etc/x.yaml":   "/etc/x.yaml",
		"./rel/../b":    "b",
	}
	for in, want := range tests {
		if got := ExpandHome(in); got != want {
			t.Errorf("ExpandHome(%q) = %q, want %q", in, got, want)
		}
	}
}
