package window

// WindowSettings is the window setting group. Values are synced from the
// g:neovide_* variables once the backend is attached.
type WindowSettings struct {
	RefreshRate            int
	RefreshRateIdle        int
	IdleEnabled            bool
	Transparency           float64
	ScaleFactor            float64
	Fullscreen             bool
	RememberWindowSize     bool
	RememberWindowPosition bool
	HideMouseWhenTyping    bool
	ConfirmQuit            bool
	Theme                  string
	Title                  string
}

// DefaultWindowSettings returns the values registered at startup.
func DefaultWindowSettings() WindowSettings {
	return WindowSettings{
		RefreshRate:            60,
		RefreshRateIdle:        5,
		IdleEnabled:            true,
		Transparency:           1.0,
		ScaleFactor:            1.0,
		RememberWindowSize:     true,
		RememberWindowPosition: true,
		ConfirmQuit:            true,
		Theme:                  "auto",
	}
}
