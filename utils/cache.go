package utils

import (
	"context"
	"log"
	"time"

	"travelorbit/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds conversation context snapshots.
	SessionCacheClient *redis.Client
	// CorrelateCacheClient holds third-party login correlation tokens.
	CorrelateCacheClient *redis.Client
	// PlannerCacheClient holds local planner conversation history.
	PlannerCacheClient *redis.Client
)

func newClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis (db %d): %v", db, err)
	}
	return client
}

// InitCache initializes all Redis clients.
func InitCache() {
	SessionCacheClient = newClient(config.AppConfig.RedisSessionDB)
	CorrelateCacheClient = newClient(config.AppConfig.RedisCorrelateDB)
	PlannerCacheClient = newClient(config.AppConfig.RedisPlannerDB)
}

// GetSessionCacheClient returns the client for session snapshots.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		SessionCacheClient = newClient(config.AppConfig.RedisSessionDB)
	}
	return SessionCacheClient
}

// GetCorrelateCacheClient returns the client for correlation tokens.
func GetCorrelateCacheClient() *redis.Client {
	if CorrelateCacheClient == nil {
		CorrelateCacheClient = newClient(config.AppConfig.RedisCorrelateDB)
	}
	return CorrelateCacheClient
}

// GetPlannerCacheClient returns the client for planner conversation history.
func GetPlannerCacheClient() *redis.Client {
	if PlannerCacheClient == nil {
		PlannerCacheClient = newClient(config.AppConfig.RedisPlannerDB)
	}
	return PlannerCacheClient
}
