package main

import (
	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logging.Info().Str("driver", cfg.DBDriver).Msg("Migrations applied")
}
