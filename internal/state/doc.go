// Package state holds the process-wide run state shared between the UI loop
// and the backend.
//
// # Overview
//
// RunningTracker is the only exit signal in Neovide. Any component may call
// Quit or QuitWithCode; the lifecycle driver watches Done and unwinds the UI
// loop, then reports ExitCode as the process status.
//
// # Concurrency Model
//
//	Backend waiter:                Lifecycle driver:
//	┌──────────────────┐           ┌────────────────────┐
//	│ nvim exits (3)   │           │ <-tracker.Done()   │
//	│ QuitWithCode(3)  │──────────→│ proxy.SendEvent()  │
//	└──────────────────┘  (once)   │ os.Exit(ExitCode())│
//	                               └────────────────────┘
//
// The first quit request wins. Its code and reason are stored with atomics
// and Done is closed exactly once, so the tracker is safe to share by pointer
// without extra locking in client code.
package state
