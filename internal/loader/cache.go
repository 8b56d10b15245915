package loader

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/district-quiz/internal/quiz"
)

const defaultCacheTTL = 10 * time.Minute

// RecordCache stores decoded record sets by key. Get returns nil, nil on a miss.
type RecordCache interface {
	Get(ctx context.Context, key string) ([]quiz.Record, error)
	Set(ctx context.Context, key string, records []quiz.Record) error
}

// Cache is the Redis-backed RecordCache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ RecordCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(key string) string {
	return "quizrecords:" + key
}

func (c *Cache) Get(ctx context.Context, key string) ([]quiz.Record, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var records []quiz.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Cache) Set(ctx context.Context, key string, records []quiz.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}

// CachedSource serves a Source through a RecordCache. Only validated sets are
// cached; cache failures are logged and fall through to the source.
type CachedSource struct {
	source Source
	cache  RecordCache
	logger zerolog.Logger
}

func NewCachedSource(source Source, cache RecordCache, logger zerolog.Logger) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cache,
		logger: logger.With().Str("component", "record_cache").Logger(),
	}
}

func (s *CachedSource) Name() string { return s.source.Name() }

func (s *CachedSource) Load(ctx context.Context) ([]quiz.Record, error) {
	cached, err := s.cache.Get(ctx, s.source.Name())
	if err != nil {
		s.logger.Warn().Err(err).Msg("record cache read failed")
	} else if len(cached) > 0 {
		if records, err := Normalize(cached); err == nil {
			s.logger.Debug().Int("records", len(records)).Msg("record cache hit")
			return records, nil
		}
		s.logger.Warn().Msg("cached record set is invalid; reloading from source")
	}

	records, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	records, err = Normalize(records)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, s.source.Name(), records); err != nil {
		s.logger.Warn().Err(err).Msg("record cache write failed")
	}
	return records, nil
}
