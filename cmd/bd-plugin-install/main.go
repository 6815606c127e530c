package main

import (
	"context"
	"os/signal"
	"syscall"

	"braindrive.ai/plugindev/internal/interfaces/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.Execute(ctx, cli.NewInstallCommand())
}
