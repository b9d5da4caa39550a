package panics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/neovide/neovide/internal/paths"
)

// LogToFile appends the record to the backtraces file. An empty path falls
// back to NEOVIDE_BACKTRACES and then to the default file in the data
// directory. Failures are reported on w and never returned.
func LogToFile(w io.Writer, r Record, path string) {
	resolved, err := paths.BacktracesFile(path)
	if err != nil {
		fmt.Fprintf(w, "Could not create backtraces file. (%v)\n", err)
		return
	}

	_ = os.MkdirAll(filepath.Dir(resolved), 0o755)

	file, err := os.OpenFile(resolved, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		file, err = os.Create(resolved)
	}
	if err != nil {
		fmt.Fprintf(w, "Could not create backtraces file. (%v)\n", err)
		return
	}
	defer func() { _ = file.Close() }()

	if _, err := io.WriteString(file, LogMessage(r)); err != nil {
		fmt.Fprintf(w, "Failed writing panic to %q: %v\n", resolved, err)
		return
	}
	fmt.Fprintf(w, "\nBacktrace saved to %q!\n", resolved)
}
