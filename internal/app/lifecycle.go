package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neovide/neovide/internal/bridge"
	"github.com/neovide/neovide/internal/clipboard"
	"github.com/neovide/neovide/internal/config"
	"github.com/neovide/neovide/internal/errorhandling"
	"github.com/neovide/neovide/internal/panics"
	"github.com/neovide/neovide/internal/settings"
	"github.com/neovide/neovide/internal/state"
	"github.com/neovide/neovide/internal/units"
	"github.com/neovide/neovide/internal/window"
)

const defaultShutdownTimeout = 500 * time.Millisecond

// Phase is a step of the process lifecycle.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseAwaitingBootstrap
	PhaseRunning
	PhaseShuttingDown
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAwaitingBootstrap:
		return "awaiting_bootstrap"
	case PhaseRunning:
		return "running"
	case PhaseShuttingDown:
		return "shutting_down"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// runtimeHandle is the part of bridge.NeovimRuntime the lifecycle needs.
type runtimeHandle interface {
	Launch(proxy window.Proxy, grid *units.GridSize, tracker *state.RunningTracker, s *settings.Settings) error
	ShutdownTimeout(d time.Duration)
}

// eventLoop is the part of window.EventLoop the lifecycle needs.
type eventLoop interface {
	CreateProxy() window.Proxy
	Output() io.Writer
	RunApp(model tea.Model) error
}

type launcher struct {
	args    []string
	ctx     context.Context
	handler *panics.Handler

	createEventLoop     func(h *panics.Handler) eventLoop
	newRuntime          func(h *panics.Handler) (runtimeHandle, error)
	presentStartupError func(err error, loop eventLoop, s *settings.Settings) int
	newUpdateLoop       func(size window.WindowSize, cfg *config.Config, proxy window.Proxy, s *settings.Settings) tea.Model
	platformFixups      func()
	disown              func(args []string, s *settings.Settings)
	initLogger          func(s *settings.Settings) error

	windowSettingsPath string
	shutdownTimeout    time.Duration
	onPhase            func(Phase)
}

// Run is the process entry point. It returns the exit code to hand to
// os.Exit.
func Run() int {
	return RunContext(context.Background())
}

// RunContext is Run with a parent context. Cancelling ctx asks the running
// application to quit with code 0.
func RunContext(ctx context.Context) int {
	l := newLauncher(os.Args)
	l.ctx = ctx
	return l.run()
}

func newLauncher(args []string) *launcher {
	l := &launcher{
		args: args,
		ctx:  context.Background(),
		createEventLoop: func(h *panics.Handler) eventLoop {
			return window.CreateEventLoop(window.WithSpawner(h.Go))
		},
		newRuntime: func(h *panics.Handler) (runtimeHandle, error) {
			rt, err := bridge.NewNeovimRuntime(bridge.WithPanicHandler(h))
			if err != nil {
				return nil, err
			}
			return rt, nil
		},
		presentStartupError: func(err error, loop eventLoop, s *settings.Settings) int {
			return errorhandling.HandleStartupErrors(err, loop, s)
		},
		platformFixups:  platformFixups,
		disown:          maybeDisown,
		initLogger:      initLogger,
		shutdownTimeout: defaultShutdownTimeout,
	}
	l.newUpdateLoop = func(size window.WindowSize, cfg *config.Config, proxy window.Proxy, s *settings.Settings) tea.Model {
		return window.NewUpdateLoop(size, cfg, proxy, s, window.WithPersistPath(l.windowSettingsPath))
	}
	return l
}

func (l *launcher) enter(p Phase) {
	slog.Debug("lifecycle phase", "component", "lifecycle", "phase", p.String())
	if l.onPhase != nil {
		l.onPhase(p)
	}
}

func (l *launcher) run() int {
	l.enter(PhaseInitializing)
	if l.handler == nil {
		l.handler = panics.NewHandler(panics.NewHook(""))
	}
	defer l.handler.Recover()

	l.platformFixups()
	loop := l.createEventLoop(l.handler)
	clipboard.Init(loop.Output())

	tracker := state.NewRunningTracker()
	s := settings.New()

	ctx, cancel := context.WithCancel(l.ctx)
	defer cancel()

	var rt runtimeHandle
	shutdown := sync.OnceFunc(func() {
		l.enter(PhaseShuttingDown)
		if rt != nil {
			rt.ShutdownTimeout(l.shutdownTimeout)
		}
	})
	defer shutdown()

	l.enter(PhaseAwaitingBootstrap)
	size, cfg, launched, err := l.setup(ctx, loop.CreateProxy(), tracker, s)
	rt = launched
	if err != nil {
		code := l.presentStartupError(err, loop, s)
		shutdown()
		l.enter(PhaseTerminated)
		return code
	}

	l.enter(PhaseRunning)
	proxy := loop.CreateProxy()
	l.handler.Go(func() {
		select {
		case <-tracker.Done():
		case <-ctx.Done():
			if l.ctx.Err() == nil {
				return
			}
			tracker.Quit("interrupted")
		}
		if err := proxy.SendEvent(window.QuitRequested{}); err != nil && !errors.Is(err, window.ErrEventLoopClosed) {
			slog.Warn("could not post quit", "component", "lifecycle", "error", err)
		}
	})

	runErr := loop.RunApp(l.newUpdateLoop(size, cfg, proxy, s))
	code := exitCode(runErr, tracker)

	shutdown()
	l.enter(PhaseTerminated)
	return code
}

// exitCode maps the UI loop result to a process status.
func exitCode(err error, tracker *state.RunningTracker) int {
	if err == nil {
		return tracker.ExitCode()
	}
	var failure *window.ExitFailure
	if errors.As(err, &failure) {
		return failure.Code
	}
	slog.Error("event loop failed", "component", "lifecycle", "error", err)
	return 1
}
