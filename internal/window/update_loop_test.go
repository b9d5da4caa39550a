package window

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/neovide/neovide/internal/cmdline"
	"github.com/neovide/neovide/internal/config"
	"github.com/neovide/neovide/internal/prefs"
	"github.com/neovide/neovide/internal/settings"
	"github.com/neovide/neovide/internal/units"
)

type nopProxy struct{}

func (nopProxy) SendEvent(UserEvent) error { return nil }

func runLoop(t *testing.T, model UpdateLoop, events ...UserEvent) (UpdateLoop, error) {
	t.Helper()
	loop := CreateEventLoop(Headless())
	proxy := loop.CreateProxy()
	for _, ev := range events {
		require.NoError(t, proxy.SendEvent(ev))
	}

	var final UpdateLoop
	err := loop.RunApp(capture{UpdateLoop: model, final: &final})
	return final, err
}

// capture records the last model state seen by the program.
type capture struct {
	UpdateLoop
	final *UpdateLoop
}

func (c capture) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := c.UpdateLoop.Update(msg)
	c.UpdateLoop = next.(UpdateLoop)
	*c.final = c.UpdateLoop
	return c, cmd
}

func TestNewUpdateLoop_Title(t *testing.T) {
	t.Setenv(TitleEnv, "")
	u := NewUpdateLoop(GridWindow{Grid: DefaultGridSize}, &config.Config{}, nopProxy{}, newSettings(cmdline.Geometry{}))
	require.Equal(t, "Neovide", u.Title())

	t.Setenv(TitleEnv, "Sandbox")
	u = NewUpdateLoop(GridWindow{Grid: DefaultGridSize}, &config.Config{}, nopProxy{}, newSettings(cmdline.Geometry{}))
	require.Equal(t, "Sandbox", u.Title())
}

func TestUpdateLoop_HandlesEventsAndSavesGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neovide-settings.toml")
	s := newSettings(cmdline.Geometry{})
	u := NewUpdateLoop(MaximizedWindow{}, &config.Config{}, nopProxy{}, s, WithPersistPath(path))

	reloaded := &config.Config{Path: "/tmp/config.toml"}
	final, err := runLoop(t, u,
		BackendOutput{Data: []byte("abc")},
		ConfigsChanged{Config: reloaded},
		NeovimExited{Code: 0},
	)
	require.NoError(t, err)
	require.Equal(t, 3, final.BytesReceived())
	require.Same(t, reloaded, final.Config())

	saved, err := prefs.LoadLastWindowSettings(path)
	require.NoError(t, err)
	require.Equal(t, prefs.ModeMaximized, saved.Mode)
	require.NotNil(t, saved.GridSize)
}

func TestUpdateLoop_WindowSizeTracksGrid(t *testing.T) {
	u := NewUpdateLoop(GridWindow{Grid: DefaultGridSize}, &config.Config{}, nopProxy{}, newSettings(cmdline.Geometry{}))

	next, _ := u.Update(tea.WindowSizeMsg{Width: 132, Height: 43})
	require.Equal(t, units.GridSize{Columns: 132, Rows: 43}, next.(UpdateLoop).GridSize())
}

func TestUpdateLoop_ExitWithCode(t *testing.T) {
	s := newSettings(cmdline.Geometry{})
	settings.Update(s, func(w *WindowSettings) { w.RememberWindowSize = false })
	u := NewUpdateLoop(GridWindow{Grid: DefaultGridSize}, &config.Config{}, nopProxy{}, s)

	_, err := runLoop(t, u, ExitWithCode{Code: 17})
	var failure *ExitFailure
	require.True(t, errors.As(err, &failure))
	require.Equal(t, 17, failure.Code)

	_, err = runLoop(t, u, ExitWithCode{Code: 0})
	require.NoError(t, err)
}

func TestUpdateLoop_FatalError(t *testing.T) {
	s := newSettings(cmdline.Geometry{})
	settings.Update(s, func(w *WindowSettings) { w.RememberWindowSize = false })
	u := NewUpdateLoop(GridWindow{Grid: DefaultGridSize}, &config.Config{}, nopProxy{}, s)

	boom := errors.New("renderer lost")
	_, err := runLoop(t, u, FatalError{Err: boom})
	require.ErrorIs(t, err, boom)
}

func TestUpdateLoop_ViewHidesTitle(t *testing.T) {
	s := newSettings(cmdline.Geometry{})
	settings.Set(s, cmdline.CmdLineSettings{TitleHidden: true})
	t.Setenv(TitleEnv, "UniqueTitle")

	u := NewUpdateLoop(GridWindow{Grid: DefaultGridSize}, &config.Config{}, nopProxy{}, s)
	require.NotContains(t, u.View(), "UniqueTitle")
}
