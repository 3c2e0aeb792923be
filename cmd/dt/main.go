package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/scott-cotton/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cli.MainContext(ctx, MainCommand(ctx))
}
