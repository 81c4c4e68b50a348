package main

import (
	"context"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"

	"github.com/fixpoints/fixpoints-api/internal/config"
	"github.com/fixpoints/fixpoints-api/internal/database"
	"github.com/fixpoints/fixpoints-api/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init("fixpoints-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	db, err := database.OpenGORM(pool, cfg.IsDevelopment())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open gorm")
	}
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	if err := database.Seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	log.Info().Strs("categories", database.SeedCategories()).Msg("database seeded")
}
