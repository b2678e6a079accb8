package tasks

import (
	"context"

	"servicehub/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer publishes notification events. Failures are logged and never returned.
type Enqueuer interface {
	BookingStatusChanged(ctx context.Context, bookingID, status string)
	ContactReceived(ctx context.Context, contactID string)
}

type AsynqEnqueuer struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewAsynqEnqueuer(opt asynq.RedisClientOpt, logger *zap.Logger) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: asynq.NewClient(opt), logger: logger}
}

func (e *AsynqEnqueuer) BookingStatusChanged(ctx context.Context, bookingID, status string) {
	task, err := NewBookingStatusTask(models.BookingStatusEvent{BookingID: bookingID, Status: status})
	if err != nil {
		e.logger.Error("Failed to build task", zap.Error(err))
		return
	}
	e.enqueue(ctx, task)
}

func (e *AsynqEnqueuer) ContactReceived(ctx context.Context, contactID string) {
	task, err := NewContactTask(models.ContactEvent{ContactID: contactID})
	if err != nil {
		e.logger.Error("Failed to build task", zap.Error(err))
		return
	}
	e.enqueue(ctx, task)
}

func (e *AsynqEnqueuer) enqueue(ctx context.Context, task *asynq.Task) {
	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		e.logger.Error("Failed to enqueue task", zap.String("type", task.Type()), zap.Error(err))
		return
	}
	e.logger.Debug("Task enqueued", zap.String("type", task.Type()), zap.String("id", info.ID), zap.String("queue", info.Queue))
}

func (e *AsynqEnqueuer) Close() error {
	return e.client.Close()
}

// NopEnqueuer drops every event.
type NopEnqueuer struct{}

func (NopEnqueuer) BookingStatusChanged(context.Context, string, string) {}

func (NopEnqueuer) ContactReceived(context.Context, string) {}
