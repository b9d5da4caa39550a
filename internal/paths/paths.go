// Package paths resolves the on-disk locations Neovide reads and writes.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const (
	appDirName = "neovide"

	// BacktracesEnv names the override path for the panic log.
	BacktracesEnv = "NEOVIDE_BACKTRACES"
	// BacktracesFileName is the panic log file name inside DataDir.
	BacktracesFileName = "neovide_backtraces.log"
)

var xdgMu sync.Mutex

// baseDirs re-reads the XDG variables so changes to the environment made
// after startup are honoured.
func baseDirs() (data, config string) {
	xdgMu.Lock()
	defer xdgMu.Unlock()
	xdg.Reload()
	return xdg.DataHome, xdg.ConfigHome
}

// DataDir returns the per-user directory for durable state such as the panic
// log and the last window geometry.
func DataDir() (string, error) {
	data, _ := baseDirs()
	if data == "" {
		return "", errors.New("resolve data dir: no data home")
	}
	return filepath.Join(data, appDirName), nil
}

// ConfigDir returns the per-user configuration directory.
func ConfigDir() (string, error) {
	_, config := baseDirs()
	if config == "" {
		return "", errors.New("resolve config dir: no config home")
	}
	return filepath.Join(config, appDirName), nil
}

// BacktracesFile resolves the panic log path. An explicit path wins, then the
// environment override, then the default file under DataDir.
func BacktracesFile(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return Expand(explicit)
	}
	if env := strings.TrimSpace(os.Getenv(BacktracesEnv)); env != "" {
		return Expand(env)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, BacktracesFileName), nil
}

// Expand resolves a leading ~ and returns an absolute path.
func Expand(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
