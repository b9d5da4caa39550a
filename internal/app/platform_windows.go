package app

import (
	"log/slog"

	"golang.org/x/sys/windows"
)

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 is (HANDLE)-4.
const dpiAwarenessPerMonitorV2 = ^uintptr(3)

var procSetProcessDpiAwarenessContext = windows.NewLazySystemDLL("user32.dll").NewProc("SetProcessDpiAwarenessContext")

func platformFixups() {
	if err := procSetProcessDpiAwarenessContext.Find(); err != nil {
		slog.Debug("per-monitor DPI awareness unavailable", "component", "lifecycle", "error", err)
		return
	}
	if ok, _, err := procSetProcessDpiAwarenessContext.Call(dpiAwarenessPerMonitorV2); ok == 0 {
		slog.Debug("SetProcessDpiAwarenessContext failed", "component", "lifecycle", "error", err)
	}
}
