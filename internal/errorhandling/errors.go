// Package errorhandling reports startup failures to the user.
package errorhandling

import (
	"fmt"
)

// Kind says which bootstrap step failed.
type Kind int

const (
	KindConfig Kind = iota + 1
	KindArguments
	KindRuntime
	KindLaunch
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindArguments:
		return "arguments"
	case KindRuntime:
		return "runtime"
	case KindLaunch:
		return "launch"
	default:
		return "unknown"
	}
}

// Title is the heading shown on the error screen.
func (k Kind) Title() string {
	switch k {
	case KindConfig:
		return "Neovide could not load its config file"
	case KindArguments:
		return "Neovide could not parse its command line"
	case KindRuntime:
		return "Neovide could not prepare the Neovim runtime"
	case KindLaunch:
		return "Neovide could not start Neovim"
	default:
		return "Neovide failed to start"
	}
}

// StartupError is a fatal bootstrap failure.
type StartupError struct {
	Kind Kind
	Err  error
}

// Wrap returns nil for a nil err, otherwise a StartupError of kind.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &StartupError{Kind: kind, Err: err}
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }
