// Package usage tracks recently used clips across videos so back-to-back
// renders do not keep showing the same footage. Tracking is optional; a nil
// tracker disables it and planning proceeds with per-video exclusion only.
package usage

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecentConfig configures the Redis connection and the recency window.
type RecentConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string // redis set key for recently used clip paths
	TTL      time.Duration
}

// RecentTracker is a Redis-backed set of recently used clip paths. Each mark
// resets the window, so the set expires TTL after the last render.
type RecentTracker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRecentTrackerFromEnv creates a tracker from REDIS_ADDR, REDIS_PASS,
// USAGE_KEY and USAGE_TTL_SECONDS. Returns nil when REDIS_ADDR is unset.
func NewRecentTrackerFromEnv() (*RecentTracker, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	key := os.Getenv("USAGE_KEY")
	if key == "" {
		key = "clips:recent"
	}
	ttl := 24 * time.Hour
	if t := os.Getenv("USAGE_TTL_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	return NewRecentTracker(RecentConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		Key:      key,
		TTL:      ttl,
	})
}

// NewRecentTracker creates a tracker and verifies connectivity.
func NewRecentTracker(cfg RecentConfig) (*RecentTracker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RecentTracker{client: client, key: cfg.Key, ttl: cfg.TTL}, nil
}

// Recent returns the clip paths used within the recency window, as an
// exclusion set for the planner. A nil tracker or a Redis failure yields an
// empty set; losing recency is not worth failing a video over.
func (r *RecentTracker) Recent(ctx context.Context) map[string]bool {
	if r == nil {
		return nil
	}

	paths, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		log.Printf("Warning: failed to load recent clips: %v", err)
		return nil
	}

	exclude := make(map[string]bool, len(paths))
	for _, p := range paths {
		exclude[p] = true
	}
	return exclude
}

// Mark records the clips used by a finished plan and refreshes the window.
func (r *RecentTracker) Mark(ctx context.Context, paths []string) {
	if r == nil || len(paths) == 0 {
		return
	}

	members := make([]interface{}, len(paths))
	for i, p := range paths {
		members[i] = p
	}
	if err := r.client.SAdd(ctx, r.key, members...).Err(); err != nil {
		log.Printf("Warning: failed to record recent clips: %v", err)
		return
	}
	// Sliding window: the set stays alive for ttl after the latest render.
	if err := r.client.Expire(ctx, r.key, r.ttl).Err(); err != nil {
		log.Printf("Warning: failed to refresh recent-clip TTL: %v", err)
	}
}

// Close closes the underlying Redis client.
func (r *RecentTracker) Close() error {
	if r == nil {
		return nil
	}
	return r.client.Close()
}
