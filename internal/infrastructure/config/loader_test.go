package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/bareshell/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultsMatchDomainConstants(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}
	wantGuard := domain.GuardConfig{
		LowThreshold:  domain.DefaultLowThreshold,
		MMIOStart:     domain.DefaultMMIOStart,
		MMIOEnd:       domain.DefaultMMIOEnd,
		HighThreshold: domain.DefaultHighThreshold,
		WriteBoundary: domain.DefaultWriteBoundary,
	}
	if diff := cmp.Diff(wantGuard, cfg.Guard); diff != "" {
		t.Fatalf("guard mismatch (-want +got):\n%s", diff)
	}
	wantMemory := domain.MemoryConfig{
		RAMBase:       domain.DefaultRAMBase,
		RAMSize:       domain.DefaultRAMSize,
		HeapStart:     domain.DefaultHeapStart,
		HeapSize:      domain.DefaultHeapSize,
		HeapAlignment: domain.DefaultHeapAlignment,
	}
	if diff := cmp.Diff(wantMemory, cfg.Memory); diff != "" {
		t.Fatalf("memory mismatch (-want +got):\n%s", diff)
	}
	if cfg.Prompt != domain.DefaultPrompt || len(cfg.Aliases) != 6 || !cfg.ColorsEnabled() {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadMissingImplicitFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfigPath, "")
	loader := NewFileLoader("")
	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want, _ := Defaults()
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(loader.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("loader must not write a config file")
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	loader := NewFileLoader(filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := loader.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
prompt: "dbg> "
colors: false
limits:
  history_size: 5
aliases:
  - name: m
    expansion: meminfo
`)
	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Prompt != "dbg> " || cfg.ColorsEnabled() {
		t.Fatalf("unexpected prompt/colors %q %v", cfg.Prompt, cfg.ColorsEnabled())
	}
	if cfg.Limits.HistorySize != 5 || cfg.Limits.ErrorLogSize != domain.DefaultErrorLogSize {
		t.Fatalf("unexpected limits %+v", cfg.Limits)
	}
	want := []domain.AliasSetting{{Name: "m", Expansion: "meminfo"}}
	if diff := cmp.Diff(want, cfg.Aliases); diff != "" {
		t.Fatalf("aliases mismatch (-want +got):\n%s", diff)
	}
	if cfg.Guard.MMIOStart != domain.DefaultMMIOStart {
		t.Fatalf("guard should keep defaults, got %+v", cfg.Guard)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "prompt: \"env> \"\n")
	t.Setenv(EnvConfigPath, path)
	cfg, err := NewFileLoader("").Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Prompt != "env> " {
		t.Fatalf("unexpected prompt %q", cfg.Prompt)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "promtp: x\n",
		"bad yaml":       "limits: [\n",
		"inverted guard": "guard:\n  mmio_start: 0x2000\n  mmio_end: 0x1000\n",
		"heap outside":   "memory:\n  heap_start: 0x10000000\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewFileLoader(writeConfig(t, body)).Load(context.Background()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg, _ := Defaults()
	raw, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	path := writeConfig(t, string(raw))
	got, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
