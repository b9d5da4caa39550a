package app

import "os"

// AppImage sets ARGV0, which Neovim would otherwise inherit.
func platformFixups() {
	_ = os.Unsetenv("ARGV0")
}
