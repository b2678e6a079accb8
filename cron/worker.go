package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/database/repository"
	"servicehub/services/notification"
	"servicehub/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker consumes notification tasks from the asynq queue.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewWorker builds the async worker. Call Start to run it in the background.
func NewWorker(opt asynq.RedisClientOpt, notifSvc notification.NotificationService, logger *zap.Logger) *Worker {
	srv := asynq.NewServer(
		opt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)
	return &Worker{srv: srv, mux: NewServeMux(notifSvc, logger), logger: logger}
}

// NewServeMux routes task types to their handlers.
func NewServeMux(notifSvc notification.NotificationService, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingStatus, handleBookingStatusTask(notifSvc, logger))
	mux.HandleFunc(tasks.TypeContactNew, handleContactTask(notifSvc, logger))
	return mux
}

// Start runs the worker in the background, retrying startup with backoff.
func (w *Worker) Start() {
	go func() {
		w.logger.Info("Starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Warn("Async worker failed to start", zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("Async worker gave up; notifications will queue until restart")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Shutdown waits for in-flight tasks and stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func handleBookingStatusTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ev, err := tasks.ParseBookingStatus(task)
		if err != nil {
			logger.Error("Invalid booking status task", zap.Error(err))
			return err
		}
		logger.Debug("Sending booking notification", zap.String("bookingId", ev.BookingID), zap.String("status", ev.Status))
		return skipMissing(notifSvc.NotifyBookingStatus(ctx, ev.BookingID, ev.Status))
	}
}

func handleContactTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ev, err := tasks.ParseContact(task)
		if err != nil {
			logger.Error("Invalid contact task", zap.Error(err))
			return err
		}
		return skipMissing(notifSvc.NotifyNewContact(ctx, ev.ContactID))
	}
}

// skipMissing stops retries for records deleted before the task ran.
func skipMissing(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return err
}
