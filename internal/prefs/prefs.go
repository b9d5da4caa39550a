// Package prefs persists the last window geometry between runs.
// The state lives in <data dir>/neovide-settings.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/neovide/neovide/internal/paths"
	"github.com/neovide/neovide/internal/units"
)

const fileName = "neovide-settings.toml"

// WindowMode is how the window was shown when it was last closed.
type WindowMode string

const (
	ModeMaximized WindowMode = "maximized"
	ModeWindowed  WindowMode = "windowed"
)

// ErrNoSettings is returned when no geometry has been saved yet.
var ErrNoSettings = errors.New("no persisted window settings")

// PersistentWindowSettings is the geometry saved on exit.
type PersistentWindowSettings struct {
	Mode      WindowMode       `toml:"mode"`
	Position  *units.PixelPos  `toml:"position,omitempty"`
	PixelSize *units.PixelSize `toml:"pixel_size,omitempty"`
	GridSize  *units.GridSize  `toml:"grid_size,omitempty"`
}

type settingsFile struct {
	Window PersistentWindowSettings `toml:"window"`
}

// DefaultPath returns the settings file location in the data directory.
func DefaultPath() (string, error) {
	dir, err := paths.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// LoadLastWindowSettings reads the saved geometry. A missing file returns
// ErrNoSettings; callers treat any error as "no prior geometry".
func LoadLastWindowSettings(path string) (PersistentWindowSettings, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return PersistentWindowSettings{}, fmt.Errorf("resolve path: %w", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return PersistentWindowSettings{}, ErrNoSettings
		}
		return PersistentWindowSettings{}, fmt.Errorf("read window settings: %w", err)
	}

	var file settingsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return PersistentWindowSettings{}, fmt.Errorf("parse window settings: %w", err)
	}

	switch file.Window.Mode {
	case ModeMaximized, ModeWindowed:
	case "":
		return PersistentWindowSettings{}, ErrNoSettings
	default:
		return PersistentWindowSettings{}, fmt.Errorf("unknown window mode %q", file.Window.Mode)
	}
	return file.Window, nil
}

// SaveLastWindowSettings writes the geometry, creating directories as needed.
func SaveLastWindowSettings(path string, s PersistentWindowSettings) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	bytes, err := toml.Marshal(settingsFile{Window: s})
	if err != nil {
		return fmt.Errorf("marshal window settings: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write window settings: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath()
	}
	return paths.Expand(path)
}
