// Package cache keeps read-heavy aggregates out of Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/maxviazov/fantasy-cricket-service/internal/config"
	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/redis/go-redis/v9"
)

// SummaryKey holds the JSON-encoded tournament summary.
const SummaryKey = "tournament:summary"

// DefaultSummaryTTL applies when the configured TTL is not positive.
const DefaultSummaryTTL = 60 * time.Second

// NewRedisClient connects to Redis and verifies the connection with a bounded ping.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// RedisSummaryCache stores the tournament summary under SummaryKey.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &RedisSummaryCache{client: client, ttl: ttl}
}

// Get reports false with a nil error on a cache miss.
func (c *RedisSummaryCache) Get(ctx context.Context) (model.TournamentSummary, bool, error) {
	data, err := c.client.Get(ctx, SummaryKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.TournamentSummary{}, false, nil
		}
		return model.TournamentSummary{}, false, err
	}
	var s model.TournamentSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return model.TournamentSummary{}, false, fmt.Errorf("unmarshaling summary: %w", err)
	}
	return s, true, nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, s model.TournamentSummary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return c.client.Set(ctx, SummaryKey, data, c.ttl).Err()
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, SummaryKey).Err()
}

// Noop is used when Redis is disabled: every Get misses.
type Noop struct{}

func (Noop) Get(context.Context) (model.TournamentSummary, bool, error) {
	return model.TournamentSummary{}, false, nil
}
func (Noop) Set(context.Context, model.TournamentSummary) error { return nil }
func (Noop) Invalidate(context.Context) error                   { return nil }
