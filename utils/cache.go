// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"clinicblocks/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

var (
	// CacheClient backs the redis block store and the notification feed.
	CacheClient *redis.Client
	// QueueClient is a plain client on the asynq queue database, used for health pings only.
	QueueClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func pingOrDie(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Fatal("Failed to connect to Redis", zap.String("client", name), zap.Error(err))
	}
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	pingOrDie(CacheClient, "cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitQueueClient initializes the client pointed at the asynq queue database.
func InitQueueClient() {
	QueueClient = newRedisClient(config.AppConfig.RedisQueueDB)
	pingOrDie(QueueClient, "queue")
}

// GetQueueClient returns the queue database client.
func GetQueueClient() *redis.Client {
	if QueueClient == nil {
		InitQueueClient()
	}
	return QueueClient
}

// QueueRedisOpt returns the asynq connection options for the block event queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
