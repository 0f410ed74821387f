package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/duedo/internal/cli"
	"github.com/idilsaglam/duedo/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		ui.Fail(err.Error())
		stop()
		os.Exit(1)
	}
}
