package errorhandling

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/neovide/neovide/internal/cmdline"
	"github.com/neovide/neovide/internal/settings"
	"github.com/neovide/neovide/internal/window"
)

// Runner drives a model to completion.
type Runner interface {
	RunApp(tea.Model) error
}

type handler struct {
	stdout      io.Writer
	stderr      io.Writer
	interactive func() bool
}

// Option customises HandleStartupErrors.
type Option func(*handler)

// WithOutput redirects the printed messages.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(h *handler) {
		h.stdout = stdout
		h.stderr = stderr
	}
}

// WithInteractive decides whether the error screen is shown.
func WithInteractive(fn func() bool) Option {
	return func(h *handler) { h.interactive = fn }
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// HandleStartupErrors reports err and returns the process exit code. Usage
// output (help, version, bad flags) is printed without a window. Anything
// else is logged, printed to stderr and then shown on an error screen driven
// by loop.
func HandleStartupErrors(err error, loop Runner, s *settings.Settings, opts ...Option) int {
	h := handler{stdout: os.Stdout, stderr: os.Stderr, interactive: stdoutIsTerminal}
	for _, opt := range opts {
		opt(&h)
	}

	var usage *cmdline.UsageError
	if errors.As(err, &usage) {
		out := h.stderr
		if usage.Code == 0 {
			out = h.stdout
		}
		fmt.Fprint(out, usage.Output)
		return usage.Code
	}

	kind := Kind(0)
	var startup *StartupError
	if errors.As(err, &startup) {
		kind = startup.Kind
	}

	slog.Error("startup failed", "component", "startup", "kind", kind.String(), "error", err)
	fmt.Fprintf(h.stderr, "%s\n%v\n", kind.Title(), err)

	if loop == nil || !h.interactive() {
		return 1
	}

	theme := ""
	if s != nil {
		theme = settings.Get[window.WindowSettings](s).Theme
	}
	if runErr := loop.RunApp(newErrorModel(kind, err, theme)); runErr != nil {
		slog.Warn("error screen failed", "component", "startup", "error", runErr)
	}
	return 1
}
