package cron

import (
	"context"
	"fmt"
	"time"

	"clinicblocks/services/notification"
	"clinicblocks/services/tasks"
	"clinicblocks/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitBlockEventWorker runs the block event worker in the background and
// returns the server so the caller can shut it down.
func InitBlockEventWorker(feed notification.NotificationFeed) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		utils.QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	handler := handleBlockEventTask(feed)
	mux.HandleFunc(tasks.TypeBlockCreated, handler)
	mux.HandleFunc(tasks.TypeBlockDeleted, handler)

	go func() {
		logger.Info("Starting block event worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Block event worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Block event worker gave up; notifications will stay queued")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleBlockEventTask(feed notification.NotificationFeed) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		p, err := tasks.DecodeBlockEvent(task)
		if err != nil {
			logger.Error("Invalid block event payload", zap.String("type", task.Type()), zap.Error(err))
			// A malformed payload never succeeds on retry.
			return fmt.Errorf("decode %s: %v: %w", task.Type(), err, asynq.SkipRetry)
		}

		n := notification.BuildBlockNotification(p)
		saved, err := feed.Push(ctx, n)
		if err != nil {
			logger.Error("Failed to store block notification", zap.String("blockID", p.BlockID), zap.Error(err))
			return err
		}

		logger.Info("Block notification stored",
			zap.String("event", p.Event), zap.String("blockID", p.BlockID), zap.String("notificationID", saved.ID))
		return nil
	}
}
