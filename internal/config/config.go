package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Record sources.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"district-quiz"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Data     Data
	Quiz     Quiz
	Postgres Postgres
	Redis    Redis
	CORS     CORS
}

// Data selects where the record set comes from.
type Data struct {
	Source          string        `env:"DATA_SOURCE" envDefault:"file"`
	File            string        `env:"DATA_FILE" envDefault:"configs/quiz_data.json"`
	URL             string        `env:"DATA_URL" envDefault:""`
	FetchTimeout    time.Duration `env:"DATA_FETCH_TIMEOUT" envDefault:"5s"`
	RefreshInterval time.Duration `env:"DATA_REFRESH_INTERVAL" envDefault:"0s"`
}

// Quiz groups gameplay defaults.
type Quiz struct {
	NumChoices   int           `env:"QUIZ_NUM_CHOICES" envDefault:"4"`
	AdvanceDelay time.Duration `env:"QUIZ_ADVANCE_DELAY" envDefault:"800ms"`
	RandomSeed   int64         `env:"QUIZ_RANDOM_SEED" envDefault:"0"`
}

// Postgres captures connection info for the SQL database. Only read when
// DATA_SOURCE=postgres.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER" envDefault:"postgres"`
	Password string `env:"PG_PASSWORD" envDefault:""`
	Database string `env:"PG_DATABASE" envDefault:"district_quiz"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10"`
}

// ConnString renders the pgx keyword/value DSN.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode, p.MaxConns)
}

// Redis holds cache + pub/sub configuration. An empty Addr disables Redis.
type Redis struct {
	Addr           string        `env:"REDIS_ADDR" envDefault:""`
	DB             int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize       int           `env:"REDIS_POOL_SIZE" envDefault:"20"`
	CacheTTL       time.Duration `env:"REDIS_CACHE_TTL" envDefault:"10m"`
	UpdatesChannel string        `env:"REDIS_UPDATES_CHANNEL" envDefault:"quiz:catalog"`
}

// Enabled reports whether a Redis address is configured.
func (r Redis) Enabled() bool { return r.Addr != "" }

// CORS holds the origins allowed to open the quiz socket.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080,http://127.0.0.1:8080"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *App) validate() error {
	switch c.Data.Source {
	case SourceFile:
		if c.Data.File == "" {
			return fmt.Errorf("DATA_FILE must be set when DATA_SOURCE=%s", SourceFile)
		}
	case SourceHTTP:
		if c.Data.URL == "" {
			return fmt.Errorf("DATA_URL must be set when DATA_SOURCE=%s", SourceHTTP)
		}
	case SourcePostgres:
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q (want file, http or postgres)", c.Data.Source)
	}
	if c.Quiz.NumChoices < 1 {
		return fmt.Errorf("QUIZ_NUM_CHOICES must be at least 1, got %d", c.Quiz.NumChoices)
	}
	return nil
}
