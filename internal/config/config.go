package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/neovide/neovide/internal/paths"
)

// PathEnv overrides the location of config.toml.
const PathEnv = "NEOVIDE_CONFIG"

const fileName = "config.toml"

// Font is the [font] table.
type Font struct {
	Normal []string `toml:"normal"`
	Size   float64  `toml:"size"`
}

// Config is one immutable snapshot of config.toml. Unset keys stay nil so the
// command line can tell "not configured" apart from false.
type Config struct {
	Wsl         *bool   `toml:"wsl"`
	NoMultigrid *bool   `toml:"no-multigrid"`
	Maximized   *bool   `toml:"maximized"`
	Vsync       *bool   `toml:"vsync"`
	Srgb        *bool   `toml:"srgb"`
	Fork        *bool   `toml:"fork"`
	Idle        *bool   `toml:"idle"`
	TitleHidden *bool   `toml:"title-hidden"`
	Tabs        *bool   `toml:"tabs"`
	Frame       *string `toml:"frame"`
	NeovimBin   *string `toml:"neovim-bin"`
	Theme       *string `toml:"theme"`
	Grid        *string `toml:"grid"`
	Size        *string `toml:"size"`
	Font        *Font   `toml:"font"`

	// BacktracesPath is resolved after loading: the configured value, then
	// NEOVIDE_BACKTRACES, then the default file in the data directory.
	BacktracesPath string `toml:"backtraces_path"`

	// Path is the file this snapshot was read from.
	Path string `toml:"-"`
}

// FilePath returns NEOVIDE_CONFIG when set, otherwise config.toml in the
// user config directory.
func FilePath() (string, error) {
	if env := strings.TrimSpace(os.Getenv(PathEnv)); env != "" {
		return paths.Expand(env)
	}
	dir, err := paths.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Init locates and loads config.toml. A missing file yields defaults; a file
// that does not parse is an error.
func Init() (*Config, error) {
	path, err := FilePath()
	if err != nil {
		return nil, fmt.Errorf("locate config: %w", err)
	}
	return Load(path)
}

// Load parses the config file at path. Unknown keys are reported and then
// ignored.
func Load(path string) (*Config, error) {
	cfg := &Config{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.resolveBacktraces()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if !errors.As(err, &strict) {
			return nil, parseError(path, err)
		}
		slog.Warn("config contains unknown keys", "component", "config", "path", path, "details", strict.String())

		cfg = &Config{Path: path}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, parseError(path, err)
		}
	}

	cfg.resolveBacktraces()
	return cfg, nil
}

func parseError(path string, err error) error {
	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		row, col := decErr.Position()
		return fmt.Errorf("parse config %s:%d:%d: %w", path, row, col, err)
	}
	return fmt.Errorf("parse config %s: %w", path, err)
}

func (c *Config) resolveBacktraces() {
	resolved, err := paths.BacktracesFile(c.BacktracesPath)
	if err != nil {
		slog.Warn("could not resolve backtraces path", "component", "config", "error", err)
		c.BacktracesPath = ""
		return
	}
	c.BacktracesPath = resolved
}

// BoolOr returns *p, or def when p is nil.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// StringOr returns *p, or def when p is nil.
func StringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
