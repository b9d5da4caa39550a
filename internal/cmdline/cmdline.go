// Package cmdline parses Neovide's command line, environment and config file
// defaults into CmdLineSettings.
package cmdline

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/neovide/neovide/internal/config"
	"github.com/neovide/neovide/internal/settings"
	"github.com/neovide/neovide/internal/units"
)

// Version is stamped at build time with -ldflags "-X".
var Version = "0.0.0-dev"

const envPrefix = "NEOVIDE"

// Frame styles accepted by --frame.
const (
	FrameFull        = "full"
	FrameNone        = "none"
	FrameTransparent = "transparent"
	FrameButtonless  = "buttonless"
)

// Geometry holds the mutually exclusive window size flags.
type Geometry struct {
	// Grid is set by --grid=COLSxROWS.
	Grid *units.GridSize
	// GridLast is set by a bare --grid: reuse the last saved grid size.
	GridLast  bool
	Size      *units.PixelSize
	Maximized bool
}

// CmdLineSettings is the parsed invocation.
type CmdLineSettings struct {
	Files      []string
	NeovimArgs []string
	Geometry   Geometry

	NeovimBin   string
	Frame       string
	LogToFile   bool
	Fork        bool
	Idle        bool
	Srgb        bool
	Tabs        bool
	Vsync       bool
	TitleHidden bool
	NoMultigrid bool
	Wsl         bool
}

// Clone returns a copy that shares no slices with c.
func (c CmdLineSettings) Clone() CmdLineSettings {
	c.Files = slices.Clone(c.Files)
	c.NeovimArgs = slices.Clone(c.NeovimArgs)
	return c
}

// UsageError is returned for --help, --version and invalid arguments. Output
// is the text to print; Code is the process exit status.
type UsageError struct {
	Output string
	Code   int
}

func (e *UsageError) Error() string {
	if e.Code == 0 {
		return "usage requested"
	}
	return strings.TrimSpace(strings.SplitN(e.Output, "\n", 2)[0])
}

type options struct {
	cfg *config.Config
}

// Option customises Handle.
type Option func(*options)

// WithConfig layers cfg under flags and environment variables.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// pairedFlag is a --name/--no-name switch whose default comes from the
// config file and then from fallback.
type pairedFlag struct {
	name       string
	usage      string
	negate     string
	configured func(*config.Config) *bool
	fallback   bool
}

var pairedFlags = []pairedFlag{
	{"fork", "Spawn a child process and leak it", "Be \"blocking\" and let the shell persist as parent process", func(c *config.Config) *bool { return c.Fork }, false},
	{"idle", "Render every frame, takes more power and CPU time but possibly helps with frame timing issues", "Disable idling", func(c *config.Config) *bool { return c.Idle }, true},
	{"srgb", "Use the sRGB color space", "Do not use the sRGB color space", func(c *config.Config) *bool { return c.Srgb }, defaultSrgb},
	{"tabs", "Open every file in a new tab", "Open files in the current window", func(c *config.Config) *bool { return c.Tabs }, true},
	{"vsync", "Enable VSync", "Disable VSync", func(c *config.Config) *bool { return c.Vsync }, true},
}

// Handle parses args (args[0] is the program name) and stores the result in
// s. Help, version and parse failures are reported as *UsageError.
func Handle(args []string, s *settings.Settings, opts ...Option) error {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	cfg := o.cfg
	if cfg == nil {
		cfg = &config.Config{}
	}

	fs := pflag.NewFlagSet("neovide", pflag.ContinueOnError)
	var usage bytes.Buffer
	fs.SetOutput(&usage)
	fs.SortFlags = false

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, p := range pairedFlags {
		fs.Bool(p.name, false, p.usage)
		fs.Bool("no-"+p.name, false, p.negate)
		v.SetDefault(p.name, config.BoolOr(p.configured(cfg), p.fallback))
		_ = v.BindPFlag(p.name, fs.Lookup(p.name))
	}

	fs.String("grid", "", "The initial grid size of the window [<COLUMNS>x<LINES>]. Defaults to columns/lines from init.vim/lua if no value is given")
	fs.Lookup("grid").NoOptDefVal = gridLastSentinel
	fs.String("size", "", "The size of the window in pixels [<WIDTH>x<HEIGHT>]")
	fs.Bool("maximized", false, "Maximize the window on startup")
	fs.String("frame", FrameFull, "Which window decorations to use (full, none, transparent, buttonless)")
	fs.String("neovim-bin", "", "Which Neovim binary to invoke headlessly instead of `nvim` found on $PATH")
	fs.Bool("log", false, "Enable the log file")
	fs.Bool("title-hidden", false, "Hide the window title")
	fs.Bool("no-multigrid", false, "Disable the Multigrid extension")
	fs.Bool("wsl", false, "Run Neovim in WSL rather than on the host")
	fs.BoolP("version", "V", false, "Print version")
	fs.BoolP("help", "h", false, "Print help")

	for _, name := range []string{"frame", "neovim-bin", "title-hidden", "no-multigrid", "wsl"} {
		_ = v.BindPFlag(name, fs.Lookup(name))
	}
	_ = v.BindEnv("neovim-bin", "NEOVIM_BIN", envPrefix+"_NEOVIM_BIN")
	v.SetDefault("frame", config.StringOr(cfg.Frame, FrameFull))
	v.SetDefault("neovim-bin", config.StringOr(cfg.NeovimBin, ""))
	v.SetDefault("title-hidden", config.BoolOr(cfg.TitleHidden, false))
	v.SetDefault("no-multigrid", config.BoolOr(cfg.NoMultigrid, false))
	v.SetDefault("wsl", config.BoolOr(cfg.Wsl, false))

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	if err := fs.Parse(rest); err != nil {
		return &UsageError{Output: fmt.Sprintf("error: %v\n\n%s", err, usageText(fs)), Code: 2}
	}

	if help, _ := fs.GetBool("help"); help {
		return &UsageError{Output: usageText(fs), Code: 0}
	}
	if version, _ := fs.GetBool("version"); version {
		return &UsageError{Output: fmt.Sprintf("neovide %s\n", Version), Code: 0}
	}

	cmd := CmdLineSettings{
		NeovimBin:   strings.TrimSpace(v.GetString("neovim-bin")),
		Frame:       v.GetString("frame"),
		LogToFile:   mustBool(fs, "log"),
		TitleHidden: v.GetBool("title-hidden"),
		NoMultigrid: v.GetBool("no-multigrid"),
		Wsl:         v.GetBool("wsl"),
	}
	for _, p := range pairedFlags {
		value := v.GetBool(p.name)
		if fs.Changed("no-" + p.name) {
			value = false
		}
		switch p.name {
		case "fork":
			cmd.Fork = value
		case "idle":
			cmd.Idle = value
		case "srgb":
			cmd.Srgb = value
		case "tabs":
			cmd.Tabs = value
		case "vsync":
			cmd.Vsync = value
		}
	}

	switch cmd.Frame {
	case FrameFull, FrameNone, FrameTransparent, FrameButtonless:
	default:
		return invalid(fs, fmt.Errorf("invalid value %q for --frame", cmd.Frame))
	}

	geometry, err := parseGeometry(fs, cfg)
	if err != nil {
		return invalid(fs, err)
	}
	cmd.Geometry = geometry

	positional := fs.Args()
	if dash := fs.ArgsLenAtDash(); dash >= 0 {
		cmd.Files = append([]string(nil), positional[:dash]...)
		cmd.NeovimArgs = append([]string(nil), positional[dash:]...)
	} else {
		cmd.Files = append([]string(nil), positional...)
	}

	settings.Set(s, cmd)
	return nil
}

const gridLastSentinel = "last"

// parseGeometry takes the geometry from the highest layer that sets any of
// grid, size or maximized: flags, then NEOVIDE_* variables, then the config
// file. Within one layer grid beats size beats maximized.
func parseGeometry(fs *pflag.FlagSet, cfg *config.Config) (Geometry, error) {
	given := 0
	for _, name := range []string{"grid", "size", "maximized"} {
		if fs.Changed(name) {
			given++
		}
	}
	if given > 1 {
		return Geometry{}, errors.New("--grid, --size and --maximized cannot be combined")
	}

	switch {
	case fs.Changed("grid"):
		grid, _ := fs.GetString("grid")
		return geometryFrom(grid, "", false)
	case fs.Changed("size"):
		size, _ := fs.GetString("size")
		return geometryFrom("", size, false)
	case fs.Changed("maximized"):
		return Geometry{Maximized: mustBool(fs, "maximized")}, nil
	}

	env := viper.New()
	env.SetEnvPrefix(envPrefix)
	env.AutomaticEnv()
	if env.IsSet("grid") || env.IsSet("size") || env.IsSet("maximized") {
		return geometryFrom(env.GetString("grid"), env.GetString("size"), env.GetBool("maximized"))
	}

	return geometryFrom(config.StringOr(cfg.Grid, ""), config.StringOr(cfg.Size, ""), config.BoolOr(cfg.Maximized, false))
}

func geometryFrom(grid, size string, maximized bool) (Geometry, error) {
	grid = strings.TrimSpace(grid)
	size = strings.TrimSpace(size)
	switch {
	case grid == gridLastSentinel:
		return Geometry{GridLast: true}, nil
	case grid != "":
		g, err := units.ParseGridSize(grid)
		if err != nil {
			return Geometry{}, err
		}
		return Geometry{Grid: &g}, nil
	case size != "":
		px, err := units.ParsePixelSize(size)
		if err != nil {
			return Geometry{}, err
		}
		return Geometry{Size: &px}, nil
	}
	return Geometry{Maximized: maximized}, nil
}

func invalid(fs *pflag.FlagSet, err error) error {
	return &UsageError{Output: fmt.Sprintf("error: %v\n\n%s", err, usageText(fs)), Code: 2}
}

func mustBool(fs *pflag.FlagSet, name string) bool {
	b, _ := fs.GetBool(name)
	return b
}

func usageText(fs *pflag.FlagSet) string {
	var b strings.Builder
	b.WriteString("Neovide: No Nonsense Neovim Gui\n\n")
	b.WriteString("Usage: neovide [OPTIONS] [FILES_TO_OPEN]... [-- <NEOVIM_ARGS>...]\n\n")
	b.WriteString("Options:\n")
	b.WriteString(fs.FlagUsages())
	return b.String()
}
