package main

import (
	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	"github.com/isaaccomputerscience/isaac-api-sub002/di"
	"github.com/isaaccomputerscience/isaac-api-sub002/helper"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
