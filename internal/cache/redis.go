// Package cache provides a thin Redis layer for read-heavy standings queries
// so the standings endpoints do not hit Postgres on every poll.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"ncaam_pickem/engine/internal/gamelogic"
	"ncaam_pickem/engine/internal/metrics"
)

// Cache wraps a Redis client with typed helpers for the things we cache
type Cache struct {
	client       *redis.Client
	standingsTTL time.Duration
	feedDayTTL   time.Duration
}

// Config holds cache configuration
type Config struct {
	Addr         string
	Password     string
	DB           int
	StandingsTTL time.Duration
	FeedDayTTL   time.Duration
}

// New connects to Redis and verifies the connection
func New(ctx context.Context, cfg Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info().Str("addr", cfg.Addr).Msg("Connected to Redis")

	return &Cache{
		client:       client,
		standingsTTL: cfg.StandingsTTL,
		feedDayTTL:   cfg.FeedDayTTL,
	}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// Health checks if Redis is reachable
func (c *Cache) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

func standingsKey(window gamelogic.Window) string {
	return fmt.Sprintf("standings:%d:%s:%s", window.Kind, window.Start, window.End)
}

// GetStandings returns cached standings for a window, or nil on a miss.
// Cache errors are logged and treated as misses so Redis being down never
// breaks a standings read.
func (c *Cache) GetStandings(ctx context.Context, window gamelogic.Window) []gamelogic.Entry {
	data, err := c.client.Get(ctx, standingsKey(window)).Bytes()
	if err == redis.Nil {
		metrics.RecordCacheMiss()
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("Redis get failed")
		metrics.RecordCacheMiss()
		return nil
	}

	var entries []gamelogic.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn().Err(err).Msg("Failed to unmarshal cached standings")
		metrics.RecordCacheMiss()
		return nil
	}

	metrics.RecordCacheHit()
	return entries
}

// SetStandings caches standings for a window
func (c *Cache) SetStandings(ctx context.Context, window gamelogic.Window, entries []gamelogic.Entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to marshal standings for cache")
		return
	}

	if err := c.client.Set(ctx, standingsKey(window), data, c.standingsTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis set failed")
	}
}

// InvalidateStandings drops every cached standings window. Called after an
// accrual pass so readers never see stale counters for longer than one poll.
func (c *Cache) InvalidateStandings(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, "standings:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("Redis scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis del failed")
		return
	}
	log.Debug().Int("keys", len(keys)).Msg("Invalidated cached standings")
}

// MarkFeedDaySynced records that a feed day was fetched recently, so the
// live poll can skip days the nightly refresh just covered.
func (c *Cache) MarkFeedDaySynced(ctx context.Context, date string) {
	key := "feedday:" + date
	if err := c.client.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), c.feedDayTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis set failed")
	}
}

// FeedDaySyncedRecently reports whether a feed day was fetched within the TTL
func (c *Cache) FeedDaySyncedRecently(ctx context.Context, date string) bool {
	err := c.client.Get(ctx, "feedday:"+date).Err()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Warn().Err(err).Msg("Redis get failed")
		return false
	}
	return true
}
