package window

import (
	"github.com/neovide/neovide/internal/config"
)

// UserEvent is an event posted into the UI loop from another goroutine.
type UserEvent interface {
	userEvent()
}

// ConfigsChanged carries a freshly loaded config snapshot.
type ConfigsChanged struct{ Config *config.Config }

// NeovimExited is posted when the backend process ends.
type NeovimExited struct{ Code int }

// QuitRequested asks the loop to close; the exit code is already recorded in
// the RunningTracker.
type QuitRequested struct{}

// BackendOutput is a chunk read from the backend's RPC stream.
type BackendOutput struct{ Data []byte }

// ClipboardSet asks the UI to place text on the system clipboard.
type ClipboardSet struct{ Text string }

// ExitWithCode ends the loop. A non-zero code is reported as *ExitFailure.
type ExitWithCode struct{ Code int }

// FatalError ends the loop with err.
type FatalError struct{ Err error }

func (ConfigsChanged) userEvent() {}
func (NeovimExited) userEvent()   {}
func (QuitRequested) userEvent()  {}
func (BackendOutput) userEvent()  {}
func (ClipboardSet) userEvent()   {}
func (ExitWithCode) userEvent()   {}
func (FatalError) userEvent()     {}
