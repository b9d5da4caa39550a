package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 150 * time.Millisecond

// Watcher re-reads the config file whenever it changes on disk.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	notify   func(*Config)

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Watch starts watching the directory containing cfg.Path. Each change loads
// a new Config and passes it to notify; a file that fails to parse is logged
// and the previous snapshot stays in effect. cfg itself is never modified.
//
// spawn starts the watcher goroutine; nil uses a plain go statement.
func Watch(ctx context.Context, cfg *Config, notify func(*Config), spawn func(func())) (*Watcher, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("watch config: no config path")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	dir := filepath.Dir(cfg.Path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch config dir %s: %w", dir, err)
	}

	w := &Watcher{
		fs:       fsw,
		path:     filepath.Clean(cfg.Path),
		debounce: defaultDebounce,
		notify:   notify,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if spawn == nil {
		spawn = func(fn func()) { go fn() }
	}
	spawn(func() { w.run(ctx) })
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer func() { _ = w.fs.Close() }()

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "component", "config", "error", err)
		case <-timerC:
			timerC = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		slog.Warn("config reload failed, keeping previous config", "component", "config", "error", err)
		return
	}
	slog.Debug("config reloaded", "component", "config", "path", w.path)
	if w.notify != nil {
		w.notify(cfg)
	}
}
