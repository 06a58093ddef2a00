package cache

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	ProfileKeyPrefix = "profile:%d"
	FeedKeyPrefix    = "feed:anon:%d"
)

const (
	ProfileTTL = 5 * time.Minute
	FeedTTL    = 30 * time.Second
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

// FeedKey caches the anonymous feed only; authenticated feeds carry
// viewer-specific like annotations and always hit the database.
func FeedKey(limit int) string {
	return fmt.Sprintf(FeedKeyPrefix, limit)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}

// InvalidateFeed drops all cached anonymous feed windows.
func InvalidateFeed(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "feed:anon:*", 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		// Entries expire on their own TTL; a failed scan just means
		// stale reads until then.
		log.Printf("Redis feed invalidation warning: %v", err)
	}
}
