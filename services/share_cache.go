package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

const shareCacheTTL = 5 * time.Minute

// ShareCache is a redis-backed read-through cache for public share links.
// Anonymous share reads are the only unauthenticated hot path, so they get
// the cache; everything else goes straight to the store.
type ShareCache struct {
	client *redis.Client
}

func NewShareCache(redisURL string) (*ShareCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &ShareCache{client: client}, nil
}

func (sc *ShareCache) key(shareID string) string {
	return fmt.Sprintf("share:%s", shareID)
}

// Get returns the cached note for a share link, if present.
func (sc *ShareCache) Get(ctx context.Context, shareID string) (*model.Note, bool) {
	data, err := sc.client.Get(ctx, sc.key(shareID)).Bytes()
	if err != nil {
		return nil, false
	}

	var note model.Note
	if err := json.Unmarshal(data, &note); err != nil {
		return nil, false
	}
	return &note, true
}

// Set caches the sanitized note under its share link with a short TTL.
func (sc *ShareCache) Set(ctx context.Context, shareID string, note *model.Note) {
	data, err := json.Marshal(note)
	if err != nil {
		return
	}
	sc.client.Set(ctx, sc.key(shareID), data, shareCacheTTL)
}

// Invalidate drops the cached entry after an edit, unshare or privacy change.
func (sc *ShareCache) Invalidate(ctx context.Context, shareID string) {
	sc.client.Del(ctx, sc.key(shareID))
}

// Close closes the underlying Redis connection.
func (sc *ShareCache) Close() error {
	return sc.client.Close()
}
