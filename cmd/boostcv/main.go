package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/YuminosukeSato/boostcv/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
