package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/freedalab/ticketflow/internal/domain"
)

const resultCacheKey = "ticketflow:tickets:all"

// ResultCache keeps the normalized resolver output in Redis for a short
// TTL. Best-effort: any cache failure is logged and the caller proceeds
// without it.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewResultCache builds a cache. A nil client or zero TTL yields a
// disabled cache that is safe to call.
func NewResultCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ResultCache {
	return &ResultCache{client: client, ttl: ttl, logger: logger}
}

func (c *ResultCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Get returns the cached ticket list, if present.
func (c *ResultCache) Get(ctx context.Context) ([]domain.Ticket, bool) {
	if !c.enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, resultCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("result cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		c.logger.Debug("result cache entry unreadable", zap.Error(err))
		return nil, false
	}
	return tickets, true
}

// Set stores the ticket list.
func (c *ResultCache) Set(ctx context.Context, tickets []domain.Ticket) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(tickets)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, resultCacheKey, data, c.ttl).Err(); err != nil {
		c.logger.Debug("result cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached list; called after ingestion passes and
// status updates.
func (c *ResultCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.client.Del(ctx, resultCacheKey).Err(); err != nil {
		c.logger.Debug("result cache invalidation failed", zap.Error(err))
	}
}
