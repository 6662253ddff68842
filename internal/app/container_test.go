package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/bareshell/internal/domain"
)

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BARESHELL_CONFIG", "")
}

func TestBuildContainerWiresSession(t *testing.T) {
	isolateHome(t)
	var out bytes.Buffer
	c, err := BuildContainer(context.Background(), Options{
		In:  strings.NewReader("echo wired\r"),
		Out: &out,
	})
	if err != nil {
		t.Fatalf("BuildContainer error: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	if got := len(c.Session.Registry().Commands()); got != 18 {
		t.Fatalf("registered %d commands", got)
	}
	if c.Session.Aliases().Len() != len(c.Config.Aliases) {
		t.Fatalf("built-in aliases not installed")
	}
	if c.Session.Printer().Enabled() {
		t.Fatal("colors should be off for a non-terminal writer")
	}

	line, err := c.Session.Reader().ReadLine(c.Config.Limits.InputSize)
	if err != nil {
		t.Fatalf("ReadLine error: %v", err)
	}
	if kind := c.Session.Execute(line); kind != domain.KindSuccess {
		t.Fatalf("Execute kind = %v", kind)
	}
	if !strings.Contains(out.String(), "wired\n") {
		t.Fatalf("output %q", out.String())
	}
}

func TestBuildContainerDoctor(t *testing.T) {
	isolateHome(t)
	c, err := BuildContainer(context.Background(), Options{In: strings.NewReader(""), Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("BuildContainer error: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	report, err := c.DoctorService.Run(context.Background())
	if err != nil {
		t.Fatalf("doctor error: %v", err)
	}
	if report.Failed() {
		t.Fatalf("doctor failed: %+v", report.Checks)
	}
}

func TestBuildContainerBadConfig(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("limits:\n  history_size: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := BuildContainer(context.Background(), Options{ConfigPath: path, Out: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected invalid config error")
	}
}

func TestBuildContainerLogsLateFailure(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "bareshell.log")
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "logging:\n  file: " + logPath + "\naliases:\n  - name: help\n    expansion: echo shadowed\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := BuildContainer(context.Background(), Options{ConfigPath: cfgPath, In: strings.NewReader(""), Out: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), `built-in alias "help"`) {
		t.Fatalf("expected alias collision error, got %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"container build failed", "commands", `built-in alias \"help\"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("log missing %q:\n%s", want, data)
		}
	}
}
