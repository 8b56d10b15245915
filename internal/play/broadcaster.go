package play

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/district-quiz/internal/loader"
	ws "github.com/gokatarajesh/district-quiz/pkg/http/ws"
)

const defaultUpdatesChannel = "quiz:catalog"

// Broadcaster fans catalog refreshes out to every connected browser. With
// Redis configured, updates travel over Pub/Sub so every instance forwards
// them; without it they go straight to the local hub.
type Broadcaster struct {
	redis   *redis.Client
	hub     *ws.Hub
	channel string
	logger  zerolog.Logger
}

var _ loader.UpdateNotifier = (*Broadcaster)(nil)

// NewBroadcaster creates a catalog update broadcaster. redis may be nil.
func NewBroadcaster(redis *redis.Client, hub *ws.Hub, channel string, logger zerolog.Logger) *Broadcaster {
	if channel == "" {
		channel = defaultUpdatesChannel
	}
	return &Broadcaster{
		redis:   redis,
		hub:     hub,
		channel: channel,
		logger:  logger.With().Str("component", "catalog_broadcaster").Logger(),
	}
}

// CatalogUpdated publishes a refreshed snapshot.
func (b *Broadcaster) CatalogUpdated(ctx context.Context, snap loader.Snapshot) error {
	evt := ws.CatalogUpdatedPayload{
		Source:      snap.Source,
		RecordCount: len(snap.Records),
		UniqueSets:  snap.UniqueSets(),
		LoadedAt:    snap.LoadedAt.Format(time.RFC3339),
	}
	raw, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	if b.redis == nil {
		b.forward(string(raw))
		return nil
	}
	return b.redis.Publish(ctx, b.channel, raw).Err()
}

// Run subscribes to the update channel and blocks until the context is cancelled.
func (b *Broadcaster) Run(ctx context.Context) error {
	if b.redis == nil || b.hub == nil {
		return nil
	}

	sub := b.redis.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.forward(msg.Payload)
		}
	}
}

func (b *Broadcaster) forward(payload string) {
	if b.hub == nil {
		return
	}

	var evt ws.CatalogUpdatedPayload
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		b.logger.Warn().Err(err).Msg("failed to decode catalog update payload")
		return
	}

	msg, err := ws.NewMessage(ws.TypeCatalogUpdated, evt)
	if err != nil {
		b.logger.Warn().Err(err).Msg("failed to marshal catalog WS payload")
		return
	}
	if err := b.hub.BroadcastAll(msg); err != nil {
		b.logger.Warn().Err(err).Msg("failed to broadcast catalog update")
	}
}
