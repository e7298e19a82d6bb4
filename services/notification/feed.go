package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinicblocks/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	feedKeyPrefix = "notifications:"
	feedMaxLen    = 200
)

// NotificationFeed stores in-app notifications, newest first.
type NotificationFeed interface {
	Push(ctx context.Context, n models.Notification) (*models.Notification, error)
	List(ctx context.Context, recipient string, limit int) ([]models.Notification, error)
}

type RedisNotificationFeed struct {
	client *redis.Client
}

func NewRedisNotificationFeed(client *redis.Client) NotificationFeed {
	return &RedisNotificationFeed{client: client}
}

func feedKey(recipient string) string {
	return feedKeyPrefix + recipient
}

func (f *RedisNotificationFeed) Push(ctx context.Context, n models.Notification) (*models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt == "" {
		n.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}

	key := feedKey(n.Recipient)
	pipe := f.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, feedMaxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("push notification: %w", err)
	}
	return &n, nil
}

func (f *RedisNotificationFeed) List(ctx context.Context, recipient string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > feedMaxLen {
		limit = feedMaxLen
	}
	raw, err := f.client.LRange(ctx, feedKey(recipient), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]models.Notification, 0, len(raw))
	for _, item := range raw {
		var n models.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue // skip corrupt entries
		}
		out = append(out, n)
	}
	return out, nil
}
