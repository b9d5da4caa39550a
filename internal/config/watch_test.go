package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_PostsNewSnapshotOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("fork = false\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	initial, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	updates := make(chan *Config, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := Watch(ctx, initial, func(c *Config) { updates <- c }, nil)
	if err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("fork = true\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case got := <-updates:
		if !BoolOr(got.Fork, false) {
			t.Fatal("reloaded Fork = false, want true")
		}
		if got == initial {
			t.Fatal("watcher reused the initial snapshot")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no config update received")
	}

	if BoolOr(initial.Fork, true) {
		t.Fatal("initial snapshot was mutated")
	}
}

func TestWatch_BadReloadKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("idle = true\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	initial, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	updates := make(chan *Config, 4)
	w, err := Watch(context.Background(), initial, func(c *Config) { updates <- c }, nil)
	if err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("idle = = nope\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case got := <-updates:
		t.Fatalf("unexpected update %+v for invalid file", got)
	case <-time.After(4 * defaultDebounce):
	}
}

func TestWatch_MissingDirFails(t *testing.T) {
	cfg := &Config{Path: filepath.Join(t.TempDir(), "missing", "config.toml")}
	if _, err := Watch(context.Background(), cfg, func(*Config) {}, nil); err == nil {
		t.Fatal("Watch should fail when the config directory is missing")
	}
}

func TestWatch_UsesSpawn(t *testing.T) {
	cfg := &Config{Path: filepath.Join(t.TempDir(), "config.toml")}
	spawned := false
	w, err := Watch(context.Background(), cfg, nil, func(fn func()) {
		spawned = true
		go fn()
	})
	if err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	if !spawned {
		t.Fatal("spawn was not used")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}
