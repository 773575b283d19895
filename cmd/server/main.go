package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/favkeeper/internal/logging"
	"github.com/dmitrijs2005/favkeeper/internal/server"
	"github.com/dmitrijs2005/favkeeper/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogFormat, os.Stdout)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
