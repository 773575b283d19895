package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/favkeeper/internal/client/cli"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewCommand(os.Stdin, os.Stdout, os.Stderr)

	if err := cmd.Run(ctx, os.Args); err != nil {
		cli.NewLogger(os.Stderr).Error(err.Error())
		stop()
		os.Exit(1)
	}

}
