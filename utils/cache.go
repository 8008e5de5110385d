package utils

import (
	"context"
	"log"
	"time"

	"palco/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the device-local fallback cache client. The blocked-slot
// ledger keeps a per-manager copy here and reads it only when the remote
// fetch fails.
var CacheClient *redis.Client

// InitCache initializes the Redis fallback cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the fallback cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}
