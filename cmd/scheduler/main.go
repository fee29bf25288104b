package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	"github.com/isaaccomputerscience/isaac-api-sub002/di"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/logger"
)

const serviceName = "booking-scheduler"

func main() {
	cfg := config.Get()

	logger.InitJSONLogger(serviceName)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	di.InitializeScheduler().Run(ctx)
}
