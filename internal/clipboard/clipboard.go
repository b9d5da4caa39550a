// Package clipboard gives the UI access to the system clipboard. When no
// native clipboard is available, Set falls back to an OSC 52 escape written
// to the terminal the event loop renders to.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable is returned by Get when no native clipboard exists.
var ErrUnavailable = errors.New("clipboard unavailable")

type backend struct {
	read  func() (string, error)
	write func(string) error
}

var (
	mu       sync.Mutex
	terminal io.Writer
	native   = backend{read: clipboard.ReadAll, write: clipboard.WriteAll}
	last     string
)

// Init binds the clipboard to the terminal output used for OSC 52.
func Init(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	terminal = w
}

// Set places text on the clipboard.
func Set(text string) error {
	mu.Lock()
	defer mu.Unlock()

	last = text
	if !clipboard.Unsupported {
		if err := native.write(text); err == nil {
			return nil
		}
	}
	if terminal == nil {
		return fmt.Errorf("set clipboard: %w", ErrUnavailable)
	}
	if _, err := osc52.New(text).WriteTo(terminal); err != nil {
		return fmt.Errorf("write osc52: %w", err)
	}
	return nil
}

// Get reads the clipboard. Without a native clipboard it returns the last
// text set through this process.
func Get() (string, error) {
	mu.Lock()
	defer mu.Unlock()

	if !clipboard.Unsupported {
		if text, err := native.read(); err == nil {
			return text, nil
		}
	}
	if last != "" {
		return last, nil
	}
	return "", ErrUnavailable
}
