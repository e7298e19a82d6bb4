package tasks

import (
	"encoding/json"

	"clinicblocks/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBlockCreated = "block:created"
	TypeBlockDeleted = "block:deleted"
)

// NewBlockEventTask wraps a block lifecycle event for the notification worker.
func NewBlockEventTask(payload models.BlockEventPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	taskType := TypeBlockCreated
	if payload.Event == "deleted" {
		taskType = TypeBlockDeleted
	}
	task := asynq.NewTask(taskType, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Queue("default")}

	return task, opts, nil
}

// DecodeBlockEvent reads the payload of a block event task.
func DecodeBlockEvent(task *asynq.Task) (models.BlockEventPayload, error) {
	var p models.BlockEventPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
