package errorhandling

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/neovide/neovide/internal/cmdline"
	"github.com/neovide/neovide/internal/settings"
	"github.com/neovide/neovide/internal/window"
)

// fakeRunner records the model and dismisses it like a user would.
type fakeRunner struct {
	runs  int
	views []string
}

func (r *fakeRunner) RunApp(m tea.Model) error {
	r.runs++
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	r.views = append(r.views, next.View())
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !next.(errorModel).closed {
		return errors.New("error screen did not close on enter")
	}
	return nil
}

func interactive() bool { return true }

func TestHandleStartupErrors_UsageHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	runner := &fakeRunner{}

	code := HandleStartupErrors(&cmdline.UsageError{Output: "Usage: neovide\n", Code: 0}, runner, settings.New(),
		WithOutput(&stdout, &stderr), WithInteractive(interactive))

	require.Equal(t, 0, code)
	require.Equal(t, "Usage: neovide\n", stdout.String())
	require.Empty(t, stderr.String())
	require.Zero(t, runner.runs)
}

func TestHandleStartupErrors_BadArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := Wrap(KindArguments, &cmdline.UsageError{Output: "error: unknown flag\n", Code: 2})

	code := HandleStartupErrors(err, &fakeRunner{}, settings.New(), WithOutput(&stdout, &stderr), WithInteractive(interactive))

	require.Equal(t, 2, code)
	require.Contains(t, stderr.String(), "unknown flag")
	require.Empty(t, stdout.String())
}

func TestHandleStartupErrors_ShowsScreen(t *testing.T) {
	var stdout, stderr bytes.Buffer
	runner := &fakeRunner{}
	s := settings.New()
	settings.Register(s, window.DefaultWindowSettings())

	err := Wrap(KindLaunch, errors.New("neovim binary not found"))
	code := HandleStartupErrors(err, runner, s, WithOutput(&stdout, &stderr), WithInteractive(interactive))

	require.Equal(t, 1, code)
	require.Equal(t, 1, runner.runs)
	require.Contains(t, stderr.String(), KindLaunch.Title())
	require.Len(t, runner.views, 1)
	require.Contains(t, runner.views[0], "neovim binary not found")
	require.Contains(t, runner.views[0], KindLaunch.Title())
}

func TestHandleStartupErrors_NonInteractiveSkipsScreen(t *testing.T) {
	var stderr bytes.Buffer
	runner := &fakeRunner{}

	code := HandleStartupErrors(errors.New("boom"), runner, nil,
		WithOutput(&bytes.Buffer{}, &stderr), WithInteractive(func() bool { return false }))

	require.Equal(t, 1, code)
	require.Zero(t, runner.runs)
	require.True(t, strings.Contains(stderr.String(), "boom"))
}

func TestStartupError_Unwrap(t *testing.T) {
	base := errors.New("parse config")
	err := Wrap(KindConfig, base)

	require.ErrorIs(t, err, base)
	var startup *StartupError
	require.True(t, errors.As(err, &startup))
	require.Equal(t, KindConfig, startup.Kind)
	require.Nil(t, Wrap(KindConfig, nil))
}
