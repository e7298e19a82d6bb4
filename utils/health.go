package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
// Nil clients are reported as not configured rather than unhealthy.
type HealthStatus struct {
	BlockStore string    `json:"blockStore"`
	Mongo      *bool     `json:"mongo,omitempty"`
	Redis      []bool    `json:"redis,omitempty"`
	CheckedAt  time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings the configured backends once and stores the snapshot.
func CheckHealth(ctx context.Context, blockStore string, redisClients []*redis.Client, mongoClient *mongo.Client) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := HealthStatus{BlockStore: blockStore, CheckedAt: time.Now()}
	for _, client := range redisClients {
		if client == nil {
			continue
		}
		status.Redis = append(status.Redis, client.Ping(ctx).Err() == nil)
	}
	if mongoClient != nil {
		healthy := mongoClient.Ping(ctx, nil) == nil
		status.Mongo = &healthy
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(ctx context.Context, blockStore string, redisClients []*redis.Client, mongoClient *mongo.Client) {
	CheckHealth(ctx, blockStore, redisClients, mongoClient)
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, blockStore, redisClients, mongoClient)
			}
		}
	}()
}
