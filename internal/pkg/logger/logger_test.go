package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell.log")
	log, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	log.With(map[string]interface{}{"session": "abc"}).Info("line dispatched", map[string]interface{}{"command": "echo"})
	log.Error("dispatch failed", errors.New("boom"), nil)
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{"line dispatched", "echo", "abc", "dispatch failed", "boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log to contain %q, got:\n%s", want, out)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "chatty"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelFloor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.log")
	log, err := New(Options{Level: "info", File: path, Quiet: true})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	log.Debug("hidden", nil)
	log.Info("kept", nil)
	_ = log.Sync()
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Fatal("debug line should be filtered at info level")
	}
	if !strings.Contains(string(data), "kept") {
		t.Fatal("info line should be kept when logging to a file")
	}
}

func TestNopDiscards(t *testing.T) {
	log := NewNop()
	log.Info("nothing", map[string]interface{}{"k": 1})
	log.Error("nothing", errors.New("x"), nil)
}
