package panics

import (
	"fmt"
	"os"
	"strings"
)

const (
	requestMessage = "This is a bug and we would love for it to be reported to https://github.com/neovide/neovide/issues"
	backtraceHint  = "note: run with `GOTRACEBACK=all` environment variable to display a backtrace"

	timestampLayout = "2006-01-02 15:04:05"
)

// GeneratePanicMessage renders the one-line summary shared by stderr and the
// backtraces file.
func GeneratePanicMessage(r Record) string {
	file := r.Location.File
	if file == "" {
		file = "<unknown>"
	}
	return fmt.Sprintf("Neovide panicked with the message '%s'. (File: %s; Line: %d, Column: %d)",
		r.Message, file, r.Location.Line, r.Location.Column)
}

// StderrMessage renders what the user sees on the terminal. Debug builds
// append either the backtrace or a hint on how to get one.
func StderrMessage(r Record, showBacktrace bool) string {
	msg := GeneratePanicMessage(r) + "\n" + requestMessage
	if !debugBuild {
		return msg
	}
	if showBacktrace {
		return msg + "\n" + r.Backtrace
	}
	return msg + "\n" + backtraceHint
}

var (
	messageEscaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
	messageUnescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r")
)

// LogMessage renders the block appended to the backtraces file. Each block
// ends in a blank line so consecutive records stay separated. Line breaks in
// the message are escaped to keep the header on one line.
func LogMessage(r Record) string {
	header := r
	header.Message = messageEscaper.Replace(r.Message)
	backtrace := strings.TrimRight(r.Backtrace, "\n")
	return fmt.Sprintf("%s - %s\n%s\n\n", r.Timestamp.Format(timestampLayout), GeneratePanicMessage(header), backtrace)
}

// BacktraceRequested reports whether GOTRACEBACK asks for full stack output.
func BacktraceRequested() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("GOTRACEBACK"))) {
	case "1", "2", "all", "system", "crash":
		return true
	default:
		return false
	}
}
