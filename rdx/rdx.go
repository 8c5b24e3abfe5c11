package rdx

import (
	"log"
	"os"
	"time"

	"mcsons/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

// InvalidatePrefix removes cached entries whose keys share prefix. Used by
// the product handlers after writes so list caches never serve stale stock.
func InvalidatePrefix(prefix string) {
	keys, err := Conn.Keys(globals.Ctx, prefix+"*").Result()
	if err != nil {
		log.Println("Redis scan error:", err)
		return
	}
	if len(keys) > 0 {
		Conn.Del(globals.Ctx, keys...)
	}
}
