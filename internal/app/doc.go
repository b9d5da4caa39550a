// Package app is the composition root of Neovide. It owns the process
// lifecycle from the first instruction to the exit code.
//
// # Lifecycle
//
//	Initializing ──> AwaitingBootstrap ──> Running ──> ShuttingDown ──> Terminated
//	                        │                               ▲
//	                        └──── startup error ────────────┘
//
// Initializing installs the first panic hook and applies platform fixups. It
// also creates the UI event loop, wires the clipboard to its output, and
// allocates the RunningTracker and settings store.
//
// AwaitingBootstrap runs setup, in order:
//
//  1. register the window, renderer and cursor settings groups
//  2. load config.toml and start watching it
//  3. reinstall the panic hook with the configured backtraces path
//  4. parse the command line into CmdLineSettings
//  5. detach from the terminal when --fork is in effect
//  6. initialise logging
//  7. resolve the initial window size from flags and saved settings
//  8. construct the Neovim runtime and launch the child
//
// A failure in any step is wrapped in an errorhandling.StartupError and
// presented to the user. The process then exits with the code the
// presentation returns.
//
// Running hands an UpdateLoop model to the event loop and blocks until it
// returns. A RunningTracker quit request, or cancellation of the parent
// context, posts QuitRequested into the loop.
//
// ShuttingDown happens exactly once on every path, including panics. It gives
// the runtime 500ms to stop the child before abandoning it.
//
// # Exit codes
//
//   - loop returned nil: the tracker's code (0 unless Neovim exited non-zero)
//   - loop returned *window.ExitFailure: its Code
//   - any other loop error: 1
//   - startup error: the code from HandleStartupErrors (2 for bad arguments)
//
// # Logging
//
// With --log, records at NEOVIDE_LOG level (debug by default) go to a rotating
// neovide.log in the working directory, and errors are mirrored to stderr.
// Without it only errors reach stderr.
package app
