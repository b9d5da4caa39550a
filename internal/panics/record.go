package panics

import (
	"runtime"
	"strings"
	"time"
)

const fallbackPayload = "Could not parse panic payload"

// Location is the source position a panic was raised from. Go frames carry no
// column information, so Column is zero unless a caller supplies one.
type Location struct {
	File   string
	Line   int
	Column int
}

// Record describes a single panic. It is built once per panic and handed to
// the active hook; nothing keeps it afterwards.
type Record struct {
	Timestamp time.Time
	Location  Location
	Message   string
	Backtrace string
}

// Capture builds a Record from a recovered panic value. It must be called from
// the deferred function that recovered the value so the panicking frame is
// still on the stack.
func Capture(value any, backtrace string) Record {
	return Record{
		Timestamp: time.Now(),
		Location:  panicLocation(),
		Message:   payloadMessage(value),
		Backtrace: backtrace,
	}
}

func payloadMessage(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fallbackPayload
	}
}

// panicLocation returns the first non-runtime frame above the earliest
// runtime.gopanic on the stack. Code that recovers and re-panics therefore
// still reports where the value was first raised.
func panicLocation() Location {
	pcs := make([]uintptr, 256)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	loc := Location{File: "<unknown>"}
	afterPanic := false
	for {
		frame, more := frames.Next()
		switch {
		case frame.Function == "runtime.gopanic":
			afterPanic = true
		case afterPanic && !strings.HasPrefix(frame.Function, "runtime."):
			loc = Location{File: frame.File, Line: frame.Line}
			afterPanic = false
		}
		if !more {
			break
		}
	}
	return loc
}
