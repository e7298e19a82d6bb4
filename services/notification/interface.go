package notification

import (
	"context"
	"fmt"

	"clinicblocks/models"
	"clinicblocks/services/tasks"
	"clinicblocks/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AdminRecipient is the shared feed every administrator reads.
const AdminRecipient = "admins"

// BlockEventPublisher announces block lifecycle events.
type BlockEventPublisher interface {
	PublishBlockEvent(ctx context.Context, payload models.BlockEventPayload) error
}

// AsynqPublisher enqueues block events for the notification worker.
type AsynqPublisher struct {
	client *asynq.Client
}

func NewAsynqPublisher(client *asynq.Client) (*AsynqPublisher, error) {
	if client == nil {
		return nil, fmt.Errorf("notification publisher initialization error: asynq client is nil")
	}
	return &AsynqPublisher{client: client}, nil
}

func (p *AsynqPublisher) PublishBlockEvent(ctx context.Context, payload models.BlockEventPayload) error {
	task, opts, err := tasks.NewBlockEventTask(payload)
	if err != nil {
		return fmt.Errorf("PublishBlockEvent: encode payload: %w", err)
	}
	info, err := p.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("PublishBlockEvent: enqueue %s: %w", task.Type(), err)
	}
	utils.GetLogger().Debug("block event enqueued",
		zap.String("taskID", info.ID), zap.String("type", task.Type()), zap.String("blockID", payload.BlockID))
	return nil
}

// NoopPublisher drops events; used when notifications are disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishBlockEvent(context.Context, models.BlockEventPayload) error { return nil }
