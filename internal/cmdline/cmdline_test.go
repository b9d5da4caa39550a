package cmdline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neovide/neovide/internal/config"
	"github.com/neovide/neovide/internal/settings"
	"github.com/neovide/neovide/internal/units"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"NEOVIDE_FORK", "NEOVIDE_IDLE", "NEOVIDE_SRGB", "NEOVIDE_TABS", "NEOVIDE_VSYNC",
		"NEOVIDE_FRAME", "NEOVIDE_GRID", "NEOVIDE_SIZE", "NEOVIDE_MAXIMIZED",
		"NEOVIDE_TITLE_HIDDEN", "NEOVIDE_NO_MULTIGRID", "NEOVIDE_WSL",
		"NEOVIM_BIN", "NEOVIDE_NEOVIM_BIN",
	} {
		t.Setenv(name, "")
	}
}

func parse(t *testing.T, args []string, opts ...Option) (CmdLineSettings, error) {
	t.Helper()
	s := settings.New()
	err := Handle(append([]string{"neovide"}, args...), s, opts...)
	return settings.Get[CmdLineSettings](s), err
}

func TestHandle_Defaults(t *testing.T) {
	clearEnv(t)

	cmd, err := parse(t, nil)
	require.NoError(t, err)
	require.False(t, cmd.Fork)
	require.True(t, cmd.Tabs)
	require.True(t, cmd.Idle)
	require.True(t, cmd.Vsync)
	require.Equal(t, FrameFull, cmd.Frame)
	require.Empty(t, cmd.Files)
	require.Equal(t, Geometry{}, cmd.Geometry)
}

func TestHandle_FilesAndNeovimArgs(t *testing.T) {
	clearEnv(t)

	cmd, err := parse(t, []string{"--no-tabs", "a.txt", "b.txt", "--", "-u", "NONE"})
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt", "b.txt"}, cmd.Files)
	require.Equal(t, []string{"-u", "NONE"}, cmd.NeovimArgs)
	require.False(t, cmd.Tabs)
}

func TestHandle_Geometry(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
		want Geometry
	}{
		{"grid value", []string{"--grid=80x24"}, Geometry{Grid: &units.GridSize{Columns: 80, Rows: 24}}},
		{"bare grid", []string{"--grid"}, Geometry{GridLast: true}},
		{"size", []string{"--size", "1024x768"}, Geometry{Size: &units.PixelSize{Width: 1024, Height: 768}}},
		{"maximized", []string{"--maximized"}, Geometry{Maximized: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parse(t, tt.args)
			require.NoError(t, err)
			require.Equal(t, tt.want, cmd.Geometry)
		})
	}
}

func TestHandle_GeometryConflict(t *testing.T) {
	clearEnv(t)

	_, err := parse(t, []string{"--maximized", "--size", "10x10"})
	var usage *UsageError
	require.True(t, errors.As(err, &usage))
	require.Equal(t, 2, usage.Code)
}

func TestHandle_InvalidArguments(t *testing.T) {
	clearEnv(t)

	for _, args := range [][]string{
		{"--definitely-not-a-flag"},
		{"--grid=wide"},
		{"--frame", "round"},
	} {
		s := settings.New()
		err := Handle(append([]string{"neovide"}, args...), s)

		var usage *UsageError
		require.True(t, errors.As(err, &usage), "args %v", args)
		require.Equal(t, 2, usage.Code)
		require.Contains(t, usage.Output, "Usage: neovide")
		require.False(t, settings.Registered[CmdLineSettings](s), "settings stored despite error")
	}
}

func TestHandle_HelpAndVersion(t *testing.T) {
	clearEnv(t)

	_, err := parse(t, []string{"--help"})
	var usage *UsageError
	require.True(t, errors.As(err, &usage))
	require.Equal(t, 0, usage.Code)
	require.Contains(t, usage.Output, "--neovim-bin")

	_, err = parse(t, []string{"-V"})
	require.True(t, errors.As(err, &usage))
	require.Equal(t, 0, usage.Code)
	require.True(t, strings.HasPrefix(usage.Output, "neovide "))
}

func TestHandle_Precedence(t *testing.T) {
	clearEnv(t)

	yes := true
	bin := "/from/config/nvim"
	cfg := &config.Config{Fork: &yes, NeovimBin: &bin}

	cmd, err := parse(t, nil, WithConfig(cfg))
	require.NoError(t, err)
	require.True(t, cmd.Fork)
	require.Equal(t, bin, cmd.NeovimBin)

	t.Setenv("NEOVIM_BIN", "/from/env/nvim")
	t.Setenv("NEOVIDE_FORK", "false")
	cmd, err = parse(t, nil, WithConfig(cfg))
	require.NoError(t, err)
	require.False(t, cmd.Fork)
	require.Equal(t, "/from/env/nvim", cmd.NeovimBin)

	cmd, err = parse(t, []string{"--fork", "--neovim-bin", "/from/flag/nvim"}, WithConfig(cfg))
	require.NoError(t, err)
	require.True(t, cmd.Fork)
	require.Equal(t, "/from/flag/nvim", cmd.NeovimBin)

	cmd, err = parse(t, []string{"--no-fork"}, WithConfig(cfg))
	require.NoError(t, err)
	require.False(t, cmd.Fork)
}

func TestHandle_GeometryPrecedence(t *testing.T) {
	clearEnv(t)

	grid := "80x24"
	size := "640x480"
	cfg := &config.Config{Grid: &grid}

	cmd, err := parse(t, []string{"--size", "800x600"}, WithConfig(cfg))
	require.NoError(t, err)
	require.Equal(t, Geometry{Size: &units.PixelSize{Width: 800, Height: 600}}, cmd.Geometry)

	cmd, err = parse(t, []string{"--maximized"}, WithConfig(cfg))
	require.NoError(t, err)
	require.Equal(t, Geometry{Maximized: true}, cmd.Geometry)

	cmd, err = parse(t, nil, WithConfig(cfg))
	require.NoError(t, err)
	require.Equal(t, Geometry{Grid: &units.GridSize{Columns: 80, Rows: 24}}, cmd.Geometry)

	t.Setenv("NEOVIDE_SIZE", "1024x768")
	cmd, err = parse(t, nil, WithConfig(cfg))
	require.NoError(t, err)
	require.Equal(t, Geometry{Size: &units.PixelSize{Width: 1024, Height: 768}}, cmd.Geometry)

	cmd, err = parse(t, []string{"--grid=100x40"}, WithConfig(&config.Config{Size: &size}))
	require.NoError(t, err)
	require.Equal(t, Geometry{Grid: &units.GridSize{Columns: 100, Rows: 40}}, cmd.Geometry)
}

func TestCmdLineSettings_GetDoesNotAliasStore(t *testing.T) {
	clearEnv(t)

	s := settings.New()
	require.NoError(t, Handle([]string{"neovide", "a.txt", "--", "-u", "NONE"}, s))

	first := settings.Get[CmdLineSettings](s)
	first.Files[0] = "changed.txt"
	first.NeovimArgs[0] = "-c"

	second := settings.Get[CmdLineSettings](s)
	require.Equal(t, []string{"a.txt"}, second.Files)
	require.Equal(t, []string{"-u", "NONE"}, second.NeovimArgs)
}
