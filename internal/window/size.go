package window

import (
	"fmt"

	"github.com/neovide/neovide/internal/cmdline"
	"github.com/neovide/neovide/internal/prefs"
	"github.com/neovide/neovide/internal/settings"
	"github.com/neovide/neovide/internal/units"
)

var (
	// DefaultGridSize is used when nothing else determines the grid.
	DefaultGridSize = units.GridSize{Columns: 100, Rows: 50}
	// MinGridSize is the smallest grid a window may request.
	MinGridSize = units.GridSize{Columns: 20, Rows: 6}
	// MaxGridSize caps absurd requests.
	MaxGridSize = units.GridSize{Columns: 10000, Rows: 1000}
)

// WindowSize is the initial size of the window: GridWindow, SizeWindow or
// MaximizedWindow.
type WindowSize interface {
	fmt.Stringer
	windowSize()
}

// GridWindow sizes the window to fit a grid of cells.
type GridWindow struct{ Grid units.GridSize }

// SizeWindow sizes the window in pixels.
type SizeWindow struct{ Size units.PixelSize }

// MaximizedWindow starts maximized.
type MaximizedWindow struct{}

func (GridWindow) windowSize()      {}
func (SizeWindow) windowSize()      {}
func (MaximizedWindow) windowSize() {}

func (w GridWindow) String() string    { return "grid " + w.Grid.String() }
func (w SizeWindow) String() string    { return "size " + w.Size.String() }
func (MaximizedWindow) String() string { return "maximized" }

// ClampGridSize bounds g to MinGridSize and MaxGridSize.
func ClampGridSize(g units.GridSize) units.GridSize {
	g = g.Max(MinGridSize)
	return units.GridSize{Columns: min(g.Columns, MaxGridSize.Columns), Rows: min(g.Rows, MaxGridSize.Rows)}
}

// DetermineWindowSize combines the saved geometry with the command line.
// Explicit geometry flags win; otherwise the saved state decides, then the
// default grid. Saved geometry is ignored when remember_window_size is off.
func DetermineWindowSize(persisted *prefs.PersistentWindowSettings, s *settings.Settings) WindowSize {
	if !settings.Get[WindowSettings](s).RememberWindowSize {
		persisted = nil
	}
	geometry := settings.Get[cmdline.CmdLineSettings](s).Geometry

	switch {
	case geometry.Grid != nil:
		return GridWindow{Grid: ClampGridSize(*geometry.Grid)}
	case geometry.GridLast:
		if persisted != nil && persisted.GridSize != nil {
			return GridWindow{Grid: ClampGridSize(*persisted.GridSize)}
		}
		return GridWindow{Grid: DefaultGridSize}
	case geometry.Size != nil:
		return SizeWindow{Size: *geometry.Size}
	case geometry.Maximized:
		return MaximizedWindow{}
	}

	if persisted != nil {
		switch persisted.Mode {
		case prefs.ModeMaximized:
			return MaximizedWindow{}
		case prefs.ModeWindowed:
			if persisted.PixelSize != nil {
				return SizeWindow{Size: *persisted.PixelSize}
			}
		}
	}
	return GridWindow{Grid: DefaultGridSize}
}

// InitialGridSize is the grid size handed to the backend before the window
// exists, when one can be known.
func InitialGridSize(size WindowSize, persisted *prefs.PersistentWindowSettings) *units.GridSize {
	if grid, ok := size.(GridWindow); ok {
		g := grid.Grid
		return &g
	}
	if persisted != nil && persisted.GridSize != nil {
		g := *persisted.GridSize
		return &g
	}
	return nil
}
