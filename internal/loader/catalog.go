package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/district-quiz/internal/quiz"
)

const defaultFetchTimeout = 5 * time.Second

// LoadObserver receives the outcome of every load attempt.
type LoadObserver interface {
	ObserveLoad(source string, elapsed time.Duration, records int, err error)
}

// Snapshot is an immutable view of the loaded record set.
type Snapshot struct {
	Records  []quiz.Record
	Source   string
	LoadedAt time.Time
	Err      error
}

// Ready reports whether sessions can be served from this snapshot.
func (s Snapshot) Ready() bool {
	return s.Err == nil && len(s.Records) > 0
}

// UniqueSets counts the distinct district sets, i.e. the possible choices.
func (s Snapshot) UniqueSets() int {
	seen := make(map[string]struct{}, len(s.Records))
	for _, rec := range s.Records {
		seen[quiz.NormalizeKey(rec.Districts)] = struct{}{}
	}
	return len(seen)
}

// Catalog holds the current record set shared by every session.
type Catalog struct {
	source   Source
	timeout  time.Duration
	observer LoadObserver
	logger   zerolog.Logger

	mu   sync.RWMutex
	snap Snapshot
}

func NewCatalog(source Source, timeout time.Duration, observer LoadObserver, logger zerolog.Logger) *Catalog {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Catalog{
		source:   source,
		timeout:  timeout,
		observer: observer,
		logger:   logger.With().Str("component", "catalog").Str("source", source.Name()).Logger(),
		snap:     Snapshot{Source: source.Name(), Err: ErrNotLoaded},
	}
}

// Load fetches and validates the record set. A failed load keeps a previously
// loaded set in place; only a catalog that never loaded carries the error.
func (c *Catalog) Load(ctx context.Context) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	name := c.source.Name()
	start := time.Now()
	records, err := c.source.Load(ctx)
	if err == nil {
		records, err = Normalize(records)
	}
	if c.observer != nil {
		c.observer.ObserveLoad(name, time.Since(start), len(records), err)
	}

	if err != nil {
		err = fmt.Errorf("load %s records: %w", name, err)
		c.mu.Lock()
		if !c.snap.Ready() {
			c.snap = Snapshot{Source: name, Err: err}
		}
		snap := c.snap
		c.mu.Unlock()

		c.logger.Error().Err(err).Bool("serving_previous", snap.Ready()).Msg("failed to load quiz data")
		return snap, err
	}

	snap := Snapshot{
		Records:  records,
		Source:   name,
		LoadedAt: time.Now().UTC(),
	}
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	c.logger.Info().
		Int("records", len(records)).
		Int("unique_sets", snap.UniqueSets()).
		Dur("elapsed", time.Since(start)).
		Msg("quiz data loaded")
	return snap, nil
}

// Snapshot returns the current record set.
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}
