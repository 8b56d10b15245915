package loader

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// UpdateNotifier is told about every successful refresh.
type UpdateNotifier interface {
	CatalogUpdated(ctx context.Context, snap Snapshot) error
}

// RefreshWorker periodically reloads the catalog. New sessions pick up the
// refreshed set; running sessions keep the one they started with.
type RefreshWorker struct {
	catalog  *Catalog
	notifier UpdateNotifier
	interval time.Duration
	logger   zerolog.Logger
}

func NewRefreshWorker(catalog *Catalog, notifier UpdateNotifier, interval time.Duration, logger zerolog.Logger) *RefreshWorker {
	return &RefreshWorker{
		catalog:  catalog,
		notifier: notifier,
		interval: interval,
		logger:   logger.With().Str("component", "catalog_refresh_worker").Logger(),
	}
}

// Run blocks until context cancellation. A non-positive interval disables refreshing.
func (w *RefreshWorker) Run(ctx context.Context) error {
	if w.catalog == nil || w.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *RefreshWorker) tick(ctx context.Context) {
	snap, err := w.catalog.Load(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("catalog refresh failed")
		return
	}
	if w.notifier == nil {
		return
	}
	if err := w.notifier.CatalogUpdated(ctx, snap); err != nil {
		w.logger.Warn().Err(err).Msg("catalog update notification failed")
	}
}
