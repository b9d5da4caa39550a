package state

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// RunningTracker records whether Neovide should keep running and the exit
// code to report once it stops.
type RunningTracker struct {
	running  atomic.Bool
	exitCode atomic.Int32
	reason   atomic.Pointer[string]

	once sync.Once
	done chan struct{}
}

// NewRunningTracker returns a tracker in the running state with exit code 0.
func NewRunningTracker() *RunningTracker {
	t := &RunningTracker{done: make(chan struct{})}
	t.running.Store(true)
	return t
}

// Quit requests a normal exit.
func (t *RunningTracker) Quit(reason string) {
	t.QuitWithCode(0, reason)
}

// QuitWithCode requests an exit with code. The first request wins; later
// calls are ignored.
func (t *RunningTracker) QuitWithCode(code int, reason string) {
	t.once.Do(func() {
		t.exitCode.Store(int32(code))
		t.reason.Store(&reason)
		t.running.Store(false)
		slog.Info("quit requested", "component", "running_tracker", "reason", reason, "code", code)
		close(t.done)
	})
}

// IsRunning reports whether no quit has been requested yet.
func (t *RunningTracker) IsRunning() bool {
	return t.running.Load()
}

// ExitCode returns the recorded exit code, 0 while still running.
func (t *RunningTracker) ExitCode() int {
	return int(t.exitCode.Load())
}

// Reason returns the reason passed with the winning quit request.
func (t *RunningTracker) Reason() string {
	if r := t.reason.Load(); r != nil {
		return *r
	}
	return ""
}

// Done is closed once a quit has been requested.
func (t *RunningTracker) Done() <-chan struct{} {
	return t.done
}
