package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/neovide/neovide/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	code := app.RunContext(ctx)
	cancel()
	os.Exit(code)
}
