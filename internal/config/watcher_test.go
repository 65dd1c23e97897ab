// ABOUTME: Tests for the polling settings watcher and live reload
// ABOUTME: Drives Check directly with explicit mtimes instead of sleeping

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mauromedda/storybook-mcp-go/internal/framework"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_Check(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("origin: a\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	base := time.Now().Add(-time.Hour)
	touch(t, path, base)

	calls := 0
	w := NewWatcher([]string{path}, time.Hour, func() { calls++ })

	if w.Check() {
		t.Fatal("unchanged file reported as changed")
	}

	touch(t, path, base.Add(time.Minute))
	if !w.Check() {
		t.Fatal("modified file not detected")
	}
	if w.Check() {
		t.Fatal("change reported twice")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if !w.Check() {
		t.Fatal("removed file not detected")
	}
	if calls != 2 {
		t.Errorf("onChange calls = %d, want 2", calls)
	}
}

func TestWatcher_DetectsCreation(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	calls := 0
	w := NewWatcher([]string{path}, 0, func() { calls++ })

	if w.Check() {
		t.Fatal("missing file reported as changed")
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !w.Check() || calls != 1 {
		t.Fatalf("creation not detected, calls = %d", calls)
	}
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	w := NewWatcher(nil, time.Millisecond, func() {})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestLive_ReloadAppliesOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvFramework, "")
	t.Setenv(EnvDisableTelemetry, "")
	t.Setenv(EnvStorybookNoTelemetry, "")
	t.Setenv(EnvOrigin, "")

	project := t.TempDir()
	path := ProjectConfigFile(project)
	writeSettings(t, path, "framework: '@storybook/react-vite'\n")

	live, err := NewLive(project, func(s *Settings) { s.DisableTelemetry = true })
	if err != nil {
		t.Fatalf("NewLive: %v", err)
	}
	if got := framework.NameOrUndefined(live.Current().Framework.Value()); got != "@storybook/react-vite" {
		t.Errorf("framework = %q, want @storybook/react-vite", got)
	}

	writeSettings(t, path, "framework: '@storybook/vue3-vite'\n")
	if err := live.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	s := live.Current()
	if got := framework.NameOrUndefined(s.Framework.Value()); got != "@storybook/vue3-vite" {
		t.Errorf("framework after reload = %q, want @storybook/vue3-vite", got)
	}
	if !s.DisableTelemetry {
		t.Error("override not re-applied after reload")
	}

	writeSettings(t, path, "framework: [unterminated\n")
	if err := live.Reload(); err == nil {
		t.Fatal("expected error for invalid settings")
	}
	if live.Current() != s {
		t.Error("failed reload replaced the settings in effect")
	}
}

func TestLive_Fixed(t *testing.T) {
	t.Parallel()

	s := &Settings{Origin: "http://example.test"}
	live := Fixed(s)
	if live.Current() != s {
		t.Fatal("Fixed did not keep the given settings")
	}
	if live.Paths() != nil {
		t.Errorf("Paths = %v, want nil", live.Paths())
	}
	if err := live.Reload(); err != nil || live.Current() != s {
		t.Errorf("Reload on fixed settings changed state: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := live.Watch(ctx, time.Millisecond); err != nil {
		t.Errorf("Watch: %v", err)
	}
}
