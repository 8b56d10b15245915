package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/district-quiz/internal/app"
	"github.com/gokatarajesh/district-quiz/internal/config"
)

func main() {
	envFile := flag.String("env-file", "configs/.env", "dotenv file loaded outside production")
	flag.Parse()

	// bootstrap logger until the app builds its own from config
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("app", "district-quiz").Logger()

	if err := loadEnvFile(*envFile, os.Getenv("APP_ENV")); err != nil {
		log.Warn().Err(err).Str("file", *envFile).Msg("could not load env file; using process environment")
	}

	cfgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	cfg, err := config.Load(cfgCtx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()
	instance, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("data_source", cfg.Data.Source).Msg("failed to build app")
	}

	if err := instance.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("runtime error")
	}
}

// loadEnvFile applies a dotenv file outside production. Variables already set
// in the process win over the file.
func loadEnvFile(path, appEnv string) error {
	if appEnv == "production" || path == "" {
		return nil
	}
	return godotenv.Load(path)
}
