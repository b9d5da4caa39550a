package window

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neovide/neovide/internal/clipboard"
	"github.com/neovide/neovide/internal/cmdline"
	"github.com/neovide/neovide/internal/config"
	"github.com/neovide/neovide/internal/prefs"
	"github.com/neovide/neovide/internal/settings"
	"github.com/neovide/neovide/internal/units"
)

// TitleEnv overrides the window title.
const TitleEnv = "NEOVIDE_WINDOW_TITLE"

const defaultTitle = "Neovide"

// UpdateLoop is the root UI model for the lifetime of the window.
type UpdateLoop struct {
	initialSize WindowSize
	config      *config.Config
	proxy       Proxy
	settings    *settings.Settings

	title       string
	grid        units.GridSize
	pixelSize   *units.PixelSize
	bytesIn     int
	status      string
	result      error
	persistPath string

	styles Styles
	keys   keyMap
}

// UpdateLoopOption customises NewUpdateLoop.
type UpdateLoopOption func(*UpdateLoop)

// WithPersistPath overrides where the window geometry is saved on exit.
func WithPersistPath(path string) UpdateLoopOption {
	return func(u *UpdateLoop) { u.persistPath = path }
}

// NewUpdateLoop builds the UI model from the resolved startup state.
func NewUpdateLoop(size WindowSize, cfg *config.Config, proxy Proxy, s *settings.Settings, opts ...UpdateLoopOption) UpdateLoop {
	title := strings.TrimSpace(os.Getenv(TitleEnv))
	if title == "" {
		title = defaultTitle
	}

	u := UpdateLoop{
		initialSize: size,
		config:      cfg,
		proxy:       proxy,
		settings:    s,
		title:       title,
		grid:        DefaultGridSize,
		styles:      defaultStyles(),
		keys:        defaultKeyMap(),
	}
	switch v := size.(type) {
	case GridWindow:
		u.grid = v.Grid
	case SizeWindow:
		px := v.Size
		u.pixelSize = &px
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// Title is the window title in effect.
func (u UpdateLoop) Title() string { return u.title }

// GridSize is the current grid size.
func (u UpdateLoop) GridSize() units.GridSize { return u.grid }

// Config is the config snapshot currently applied.
func (u UpdateLoop) Config() *config.Config { return u.config }

// BytesReceived counts backend output seen so far.
func (u UpdateLoop) BytesReceived() int { return u.bytesIn }

// Result implements Resulter.
func (u UpdateLoop) Result() error { return u.result }

// Init implements tea.Model.
func (u UpdateLoop) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(u.title)}
	if _, ok := u.initialSize.(MaximizedWindow); ok {
		cmds = append(cmds, tea.EnterAltScreen)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (u UpdateLoop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		u.grid = units.GridSize{Columns: msg.Width, Rows: msg.Height}
		return u, nil

	case tea.KeyMsg:
		if key.Matches(msg, u.keys.Quit) {
			return u.quit("quit key")
		}
		return u, nil

	case ConfigsChanged:
		if msg.Config != nil {
			u.config = msg.Config
			u.status = "config reloaded"
			slog.Info("applied config change", "component", "window", "path", msg.Config.Path)
		}
		return u, nil

	case BackendOutput:
		u.bytesIn += len(msg.Data)
		return u, nil

	case ClipboardSet:
		if err := clipboard.Set(msg.Text); err != nil {
			slog.Warn("clipboard set failed", "component", "window", "error", err)
		}
		return u, nil

	case NeovimExited:
		slog.Info("neovim exited", "component", "window", "code", msg.Code)
		return u.quit("neovim exited")

	case QuitRequested:
		return u.quit("quit requested")

	case ExitWithCode:
		if msg.Code != 0 {
			u.result = &ExitFailure{Code: msg.Code}
		}
		return u.quit("exit with code")

	case FatalError:
		u.result = msg.Err
		return u.quit("fatal error")
	}
	return u, nil
}

func (u UpdateLoop) quit(reason string) (tea.Model, tea.Cmd) {
	slog.Debug("closing window", "component", "window", "reason", reason)
	u.saveWindowSettings()
	return u, tea.Quit
}

func (u UpdateLoop) saveWindowSettings() {
	if u.settings == nil || !settings.Get[WindowSettings](u.settings).RememberWindowSize {
		return
	}

	persisted := prefs.PersistentWindowSettings{Mode: prefs.ModeWindowed}
	if _, ok := u.initialSize.(MaximizedWindow); ok {
		persisted.Mode = prefs.ModeMaximized
	}
	grid := u.grid
	persisted.GridSize = &grid
	if u.pixelSize != nil {
		px := *u.pixelSize
		persisted.PixelSize = &px
	}

	if err := prefs.SaveLastWindowSettings(u.persistPath, persisted); err != nil {
		slog.Warn("failed to save window settings", "component", "window", "error", err)
	}
}

// View implements tea.Model.
func (u UpdateLoop) View() string {
	var b strings.Builder
	if !u.titleHidden() {
		b.WriteString(u.styles.Title.Render(u.title))
		b.WriteString("\n")
	}
	b.WriteString(u.styles.Muted.Render(fmt.Sprintf("grid %s  ·  %d bytes from neovim", u.grid, u.bytesIn)))
	if u.status != "" {
		b.WriteString("\n")
		b.WriteString(u.styles.Status.Render(u.status))
	}
	b.WriteString("\n")
	b.WriteString(u.styles.Muted.Render(u.keys.Quit.Help().Key + " " + u.keys.Quit.Help().Desc))

	return u.styles.Frame.Render(b.String())
}

func (u UpdateLoop) titleHidden() bool {
	if u.settings == nil {
		return false
	}
	return settings.Get[cmdline.CmdLineSettings](u.settings).TitleHidden
}
