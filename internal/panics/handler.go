package panics

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// Hook receives every panic record. Hooks run synchronously on the panicking
// goroutine before it continues unwinding.
type Hook func(Record)

// NewHook returns the standard hook: the message goes to stderr and the full
// record is appended to the backtraces file at path. An empty path is
// resolved when the panic happens.
func NewHook(path string) Hook {
	return newHook(os.Stderr, path)
}

func newHook(w io.Writer, path string) Hook {
	return func(r Record) {
		fmt.Fprintln(w, StderrMessage(r, BacktraceRequested()))
		LogToFile(w, r, path)
	}
}

// Handler owns the active hook. Exactly one hook is active at a time;
// Install swaps it atomically.
type Handler struct {
	hook   atomic.Pointer[Hook]
	stderr io.Writer
}

// NewHandler returns a Handler with initial installed.
func NewHandler(initial Hook) *Handler {
	h := &Handler{stderr: os.Stderr}
	h.Install(initial)
	return h
}

// Install replaces the active hook. A nil hook is ignored.
func (h *Handler) Install(hook Hook) {
	if hook == nil {
		return
	}
	h.hook.Store(&hook)
}

// Recover must be deferred directly. It reports a panic through the active
// hook and then re-panics with the original value. A nil Handler only
// re-panics.
func (h *Handler) Recover() {
	value := recover()
	if value == nil {
		return
	}
	if h != nil {
		h.handle(value, string(debug.Stack()))
	}
	panic(value)
}

// Go runs fn on a new goroutine guarded by Recover.
func (h *Handler) Go(fn func()) {
	go func() {
		defer h.Recover()
		fn()
	}()
}

func (h *Handler) handle(value any, backtrace string) {
	record := Capture(value, backtrace)
	hook := h.hook.Load()
	if hook == nil {
		return
	}
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(h.output(), "panic hook failed: %v\n", err)
		}
	}()
	(*hook)(record)
}

func (h *Handler) output() io.Writer {
	if h.stderr == nil {
		return os.Stderr
	}
	return h.stderr
}
