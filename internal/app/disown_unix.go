//go:build !windows

package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/neovide/neovide/internal/cmdline"
	"github.com/neovide/neovide/internal/settings"
)

// maybeDisown re-launches Neovide detached from the terminal when --fork is
// set and stdout is a TTY. The parent exits with status 0.
func maybeDisown(args []string, s *settings.Settings) {
	if !settings.Get[cmdline.CmdLineSettings](s).Fork || !isatty.IsTerminal(os.Stdout.Fd()) {
		return
	}

	exe, err := os.Executable()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error in disowning process, cannot obtain the path for the current executable, continuing without disowning...")
		return
	}

	var childArgs []string
	if len(args) > 1 {
		childArgs = args[1:]
	}
	child := exec.Command(exe, childArgs...)
	child.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := child.Start(); err != nil {
		slog.Warn("could not disown, continuing attached", "component", "lifecycle", "error", err)
		return
	}
	_ = child.Process.Release()
	os.Exit(0)
}
