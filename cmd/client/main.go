package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"userapp/internal/client/cli"
	"userapp/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.NewRootCommand(config.LoadConfig()).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
