// Package panics captures panics into a durable backtraces log.
//
// # Overview
//
// Go has no process-wide panic hook, so every long-lived goroutine root
// defers Handler.Recover (or is started through Handler.Go). On a panic the
// handler builds a Record, hands it to the active Hook and then re-panics so
// the runtime still terminates the process with its usual output.
//
// # Two-stage installation
//
// The lifecycle driver creates the Handler with NewHook("") before anything
// else runs. That hook resolves its path lazily: NEOVIDE_BACKTRACES, then
// neovide_backtraces.log under the data directory. Once the config file is
// loaded a second hook built with the config's resolved path replaces the
// first:
//
//	handler := panics.NewHandler(panics.NewHook(""))
//	...
//	handler.Install(panics.NewHook(cfg.BacktracesPath))
//
// Both hooks share the same formatting; only the path differs.
//
// # File format
//
// Records are appended as blank-line separated blocks:
//
//	2024-05-01 12:00:00 - Neovide panicked with the message 'boom'. (File: main.go; Line: 10, Column: 0)
//	goroutine 1 [running]:
//	...
//
// ReadLog parses the file back into records.
//
// # Failure behaviour
//
// Logging a panic never panics itself. Directory creation, file open and
// write failures are reported on stderr and the hook returns.
package panics
