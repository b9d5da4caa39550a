// Command neovide-tui runs Neovide against a throwaway profile. Config and
// data directories live in a temp dir that is removed on exit, and Neovim is
// started with a bundled init.lua.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/neovide/neovide/internal/app"
	"github.com/neovide/neovide/internal/config"
	"github.com/neovide/neovide/internal/window"
)

//go:embed init.lua
var initLua []byte

func main() {
	os.Exit(run())
}

func run() int {
	dir, err := os.MkdirTemp("", "neovide-tui-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "neovide-tui: %v\n", err)
		return 1
	}
	defer os.RemoveAll(dir)

	if err := prepareProfile(dir); err != nil {
		fmt.Fprintf(os.Stderr, "neovide-tui: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()
	return app.RunContext(ctx)
}

func prepareProfile(dir string) error {
	configHome := filepath.Join(dir, "config")
	dataHome := filepath.Join(dir, "data")
	nvimDir := filepath.Join(configHome, "nvim")
	neovideDir := filepath.Join(configHome, "neovide")
	for _, d := range []string{nvimDir, neovideDir, dataHome} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(filepath.Join(nvimDir, "init.lua"), initLua, 0o644); err != nil {
		return err
	}
	configPath := filepath.Join(neovideDir, "config.toml")
	if err := os.WriteFile(configPath, nil, 0o644); err != nil {
		return err
	}

	env := map[string]string{
		"XDG_CONFIG_HOME": configHome,
		"XDG_DATA_HOME":   dataHome,
		config.PathEnv:    configPath,
		window.TitleEnv:   "neovide-tui",
	}
	for k, v := range env {
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}
	return nil
}
