package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/neovide/neovide/internal/cmdline"
	"github.com/neovide/neovide/internal/config"
	"github.com/neovide/neovide/internal/errorhandling"
	"github.com/neovide/neovide/internal/panics"
	"github.com/neovide/neovide/internal/prefs"
	"github.com/neovide/neovide/internal/renderer"
	"github.com/neovide/neovide/internal/settings"
	"github.com/neovide/neovide/internal/state"
	"github.com/neovide/neovide/internal/window"
)

// setup registers settings, loads config, parses the command line and
// launches Neovim. On failure the runtime is returned when it was already
// constructed so the caller can shut it down.
func (l *launcher) setup(ctx context.Context, proxy window.Proxy, tracker *state.RunningTracker, s *settings.Settings) (window.WindowSize, *config.Config, runtimeHandle, error) {
	settings.Register(s, window.DefaultWindowSettings())
	settings.Register(s, renderer.DefaultRendererSettings())
	settings.Register(s, renderer.DefaultCursorSettings())

	cfg, err := config.Init()
	if err != nil {
		return nil, nil, nil, errorhandling.Wrap(errorhandling.KindConfig, err)
	}
	notify := func(next *config.Config) {
		if err := proxy.SendEvent(window.ConfigsChanged{Config: next}); err != nil {
			slog.Debug("config change not delivered", "component", "config", "error", err)
		}
	}
	if _, err := config.Watch(ctx, cfg, notify, l.handler.Go); err != nil {
		slog.Warn("config watcher not started", "component", "config", "error", err)
	}

	l.handler.Install(panics.NewHook(cfg.BacktracesPath))

	if err := cmdline.Handle(l.args, s, cmdline.WithConfig(cfg)); err != nil {
		return nil, cfg, nil, errorhandling.Wrap(errorhandling.KindArguments, err)
	}

	l.disown(l.args, s)

	if l.initLogger != nil {
		if err := l.initLogger(s); err != nil {
			slog.Warn("logger init failed", "component", "lifecycle", "error", err)
		}
	}
	slog.Debug("neovide version", "component", "lifecycle", "version", cmdline.Version)

	var persisted *prefs.PersistentWindowSettings
	if settings.Get[window.WindowSettings](s).RememberWindowSize {
		if saved, err := prefs.LoadLastWindowSettings(l.windowSettingsPath); err == nil {
			persisted = &saved
		} else if !errors.Is(err, prefs.ErrNoSettings) {
			slog.Debug("ignoring saved window settings", "component", "lifecycle", "error", err)
		}
	}
	size := window.DetermineWindowSize(persisted, s)
	grid := window.InitialGridSize(size, persisted)
	slog.Debug("window size determined", "component", "lifecycle", "size", size.String())

	rt, err := l.newRuntime(l.handler)
	if err != nil {
		return nil, cfg, nil, errorhandling.Wrap(errorhandling.KindRuntime, err)
	}
	if err := rt.Launch(proxy, grid, tracker, s); err != nil {
		return size, cfg, rt, errorhandling.Wrap(errorhandling.KindLaunch, err)
	}
	return size, cfg, rt, nil
}
