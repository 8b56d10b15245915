package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/district-quiz/internal/config"
	"github.com/gokatarajesh/district-quiz/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/district-quiz/internal/db/sqlc"
	"github.com/gokatarajesh/district-quiz/internal/loader"
	"github.com/gokatarajesh/district-quiz/internal/logging"
	"github.com/gokatarajesh/district-quiz/internal/metrics"
	"github.com/gokatarajesh/district-quiz/internal/play"
	"github.com/gokatarajesh/district-quiz/internal/server"
	ws "github.com/gokatarajesh/district-quiz/pkg/http/ws"
)

// Application aggregates shared infrastructure (catalog, optional DB and
// cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	broadcaster   *play.Broadcaster
	refreshWorker *loader.RefreshWorker
	bgCancels     []context.CancelFunc
}

// New bootstraps logger, backends, the record catalog and the HTTP server.
// A failed initial load is logged; sessions then show the load failure.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("data_source", cfg.Data.Source).Msg("starting application bootstrap")

	var pool *pgxpool.Pool
	if cfg.Data.Source == config.SourcePostgres {
		var err error
		pool, err = pgxpool.New(ctx, cfg.Postgres.ConnString())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; record cache and cross-instance updates disabled")
	}

	source, err := newSource(cfg, pool)
	if err != nil {
		return nil, err
	}
	if redisClient != nil {
		source = loader.NewCachedSource(source, loader.NewCache(redisClient, cfg.Redis.CacheTTL), logger)
	}

	quizMetrics := metrics.New(prometheus.DefaultRegisterer)
	catalog := loader.NewCatalog(source, cfg.Data.FetchTimeout, quizMetrics, logger)
	if _, err := catalog.Load(ctx); err != nil {
		logger.Error().Err(err).Msg("initial quiz data load failed; sessions will report the failure")
	}

	wsHub := ws.NewHub(logger)
	quizHandler := play.NewHandler(catalog, wsHub, quizMetrics, play.Options{
		NumChoices:   cfg.Quiz.NumChoices,
		AdvanceDelay: cfg.Quiz.AdvanceDelay,
		Seed:         cfg.Quiz.RandomSeed,
	}, server.NewUpgrader(cfg.CORS.AllowedOrigins), logger)
	broadcaster := play.NewBroadcaster(redisClient, wsHub, cfg.Redis.UpdatesChannel, logger)
	recordsHandler := loader.NewHTTPHandler(catalog, logger)

	var refreshWorker *loader.RefreshWorker
	if interval := cfg.Data.RefreshInterval; interval > 0 {
		refreshWorker = loader.NewRefreshWorker(catalog, broadcaster, interval, logger)
	}

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, quizHandler.HandleWebSocket, recordsHandler.HandleGet)

	return &Application{
		cfg:           cfg,
		logger:        logger,
		pool:          pool,
		redis:         redisClient,
		http:          apiServer,
		broadcaster:   broadcaster,
		refreshWorker: refreshWorker,
		bgCancels:     make([]context.CancelFunc, 0, 2),
	}, nil
}

func newSource(cfg *config.App, pool *pgxpool.Pool) (loader.Source, error) {
	switch cfg.Data.Source {
	case config.SourceFile:
		return loader.NewFileSource(cfg.Data.File), nil
	case config.SourceHTTP:
		return loader.NewHTTPSource(cfg.Data.URL, &http.Client{Timeout: cfg.Data.FetchTimeout}), nil
	case config.SourcePostgres:
		return loader.NewPostgresSource(repository.NewRecordRepository(sqlcgen.New(pool))), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.broadcaster != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.broadcaster.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("catalog broadcaster stopped")
			}
		}()
	}

	if a.refreshWorker != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.refreshWorker.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("catalog refresh worker stopped")
			}
		}()
	}
}
