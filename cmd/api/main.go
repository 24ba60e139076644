package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"Community_Portal/internal/app"
	"Community_Portal/internal/config"
	"Community_Portal/internal/logger"

	"github.com/op/go-logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.InitLogger(logging.INFO)
		logger.Errorf("load config: %v", err)
		os.Exit(1)
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Errorf("start: %v", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		logger.Errorf("server: %v", err)
		a.Close(context.Background())
		os.Exit(1)
	}
}
