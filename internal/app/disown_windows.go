package app

import "github.com/neovide/neovide/internal/settings"

func maybeDisown([]string, *settings.Settings) {}
