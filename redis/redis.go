package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, running without cache")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

const publicPageTTL = 60 * time.Second

func publicPageKey(slug string) string {
	return "public_page:" + slug
}

// GetPublicPage returns the cached public booking-page JSON for a slug, or
// "" on miss. All cache paths are no-ops when Redis is not configured.
func GetPublicPage(slug string) string {
	if Client == nil {
		return ""
	}
	val, err := Client.Get(Ctx, publicPageKey(slug)).Result()
	if err != nil {
		return ""
	}
	return val
}

// SetPublicPage caches the public booking-page JSON for a slug.
func SetPublicPage(slug string, payload []byte) {
	if Client == nil {
		return
	}
	if err := Client.Set(Ctx, publicPageKey(slug), payload, publicPageTTL).Err(); err != nil {
		log.Printf("Failed to cache public page for %s: %v", slug, err)
	}
}

// InvalidatePublicPage drops the cached page after any write that changes
// what the booking page shows (slot edits, bookings, profile updates).
func InvalidatePublicPage(slug string) {
	if Client == nil || slug == "" {
		return
	}
	Client.Del(Ctx, publicPageKey(slug))
}
