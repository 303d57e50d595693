// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"runway/config"

	"github.com/go-redis/redis/v8"
)

var (
	// EventsClient publishes runway events.
	EventsClient *redis.Client
)

// InitEventsCache initializes the Redis client used for runway event pub/sub.
func InitEventsCache() {
	EventsClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEventsDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := EventsClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Events): %v", err)
	}
}

// GetEventsClient returns the Redis client for runway events.
func GetEventsClient() *redis.Client {
	if EventsClient == nil {
		InitEventsCache()
	}
	return EventsClient
}
