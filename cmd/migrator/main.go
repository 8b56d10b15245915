package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/district-quiz/internal/config"
	"github.com/gokatarajesh/district-quiz/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/district-quiz/internal/db/sqlc"
	"github.com/gokatarajesh/district-quiz/internal/loader"
)

func main() {
	var (
		command = flag.String("command", "up", "Command: up, down, status, or seed")
		dir     = flag.String("dir", "db/migrations", "Directory containing migration files")
		file    = flag.String("file", "configs/quiz_data.json", "Record file to import (seed only)")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	var pg config.Postgres
	if err := env.Parse(&pg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse postgres config")
	}

	if *command == "seed" {
		if err := seed(pg, *file); err != nil {
			log.Fatal().Err(err).Str("file", *file).Msg("failed to seed records")
		}
		return
	}

	migrationDir, err := filepath.Abs(*dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dir).Msg("failed to resolve migration directory")
	}

	if _, err := os.Stat(migrationDir); os.IsNotExist(err) {
		log.Fatal().Str("dir", migrationDir).Msg("migration directory does not exist")
	}

	// pgx via stdlib for goose's database/sql API
	db, err := sql.Open("pgx", pg.ConnString())
	if err != nil {
		log.Fatal().Err(err).Str("host", pg.Host).Int("port", pg.Port).Msg("failed to open database connection")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("host", pg.Host).
		Int("port", pg.Port).
		Str("database", pg.Database).
		Str("migration_dir", migrationDir).
		Msg("connected to database")

	goose.SetBaseFS(nil)
	goose.SetTableName("goose_db_version")

	switch *command {
	case "up":
		if err := goose.Up(db, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations up")
		}
		log.Info().Msg("migrations applied successfully")

	case "down":
		if err := goose.Down(db, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations down")
		}
		log.Info().Msg("migrations rolled back successfully")

	case "status":
		if err := goose.Status(db, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to get migration status")
		}

	default:
		log.Fatal().Str("command", *command).Msg("unknown command. Use: up, down, status, or seed")
	}
}

// seed validates a record file and upserts it into street_records.
func seed(pg config.Postgres, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	records, err := loader.NewFileSource(path).Load(ctx)
	if err != nil {
		return err
	}
	records, err = loader.Normalize(records)
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, pg.ConnString())
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := repository.NewRecordRepository(sqlcgen.New(pool))
	for _, rec := range records {
		if _, err := repo.Upsert(ctx, rec.Street, rec.Districts); err != nil {
			return err
		}
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("imported", len(records)).Int64("stored", count).Msg("records seeded")
	return nil
}
