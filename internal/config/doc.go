// Package config loads Neovide's config.toml and watches it for changes.
//
// # Overview
//
// The config file holds defaults for command-line options plus a few values
// only settable from the file, such as the backtraces log path. Init is
// called once during bootstrap; Watch then posts a fresh Config every time
// the file changes.
//
// # Configuration Discovery
//
//  1. NEOVIDE_CONFIG, when set, names the file
//  2. Otherwise $XDG_CONFIG_HOME/neovide/config.toml (or the platform
//     config directory)
//  3. A missing file yields an empty Config
//  4. A file that fails to parse is an error at startup
//
// Unknown keys are logged as a warning and then ignored.
//
// # Backtraces Path
//
// BacktracesPath is always resolved after loading:
//
//   - backtraces_path from the file, with ~ expanded
//   - NEOVIDE_BACKTRACES
//   - neovide_backtraces.log in the data directory
//
// # Watching
//
// Watch observes the config directory with fsnotify, so editors that replace
// the file by rename are picked up. Bursts of events are debounced and each
// reload builds a new Config; snapshots are never modified after Load
// returns. A reload that fails to parse is logged and skipped.
//
// # Example config.toml
//
//	fork = true
//	neovim-bin = "/usr/local/bin/nvim"
//	backtraces_path = "~/.local/state/neovide/backtraces.log"
//
//	[font]
//	normal = ["JetBrainsMono Nerd Font"]
//	size = 13.0
package config
