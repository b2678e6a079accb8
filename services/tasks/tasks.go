package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"servicehub/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingStatus = "booking:status"
	TypeContactNew    = "contact:new"
)

var defaultOpts = []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

func NewBookingStatusTask(ev models.BookingStatusEvent) (*asynq.Task, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", TypeBookingStatus, err)
	}
	return asynq.NewTask(TypeBookingStatus, b, defaultOpts...), nil
}

func NewContactTask(ev models.ContactEvent) (*asynq.Task, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", TypeContactNew, err)
	}
	return asynq.NewTask(TypeContactNew, b, defaultOpts...), nil
}

func ParseBookingStatus(t *asynq.Task) (models.BookingStatusEvent, error) {
	var ev models.BookingStatusEvent
	if err := json.Unmarshal(t.Payload(), &ev); err != nil {
		return ev, fmt.Errorf("invalid %s payload: %v: %w", TypeBookingStatus, err, asynq.SkipRetry)
	}
	if ev.BookingID == "" {
		return ev, fmt.Errorf("%s payload without bookingId: %w", TypeBookingStatus, asynq.SkipRetry)
	}
	return ev, nil
}

func ParseContact(t *asynq.Task) (models.ContactEvent, error) {
	var ev models.ContactEvent
	if err := json.Unmarshal(t.Payload(), &ev); err != nil {
		return ev, fmt.Errorf("invalid %s payload: %v: %w", TypeContactNew, err, asynq.SkipRetry)
	}
	if ev.ContactID == "" {
		return ev, fmt.Errorf("%s payload without contactId: %w", TypeContactNew, asynq.SkipRetry)
	}
	return ev, nil
}
