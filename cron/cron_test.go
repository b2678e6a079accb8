package cron

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/services/booking"
	"servicehub/services/tasks"
	"servicehub/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	bookings []string
	contacts []string
	err      error
}

func (f *fakeNotifier) NotifyBookingStatus(_ context.Context, bookingID, status string) error {
	f.bookings = append(f.bookings, bookingID+":"+status)
	return f.err
}

func (f *fakeNotifier) NotifyNewContact(_ context.Context, contactID string) error {
	f.contacts = append(f.contacts, contactID)
	return f.err
}

func TestServeMuxRoutesTasks(t *testing.T) {
	n := &fakeNotifier{}
	mux := NewServeMux(n, zap.NewNop())
	ctx := context.Background()

	task, err := tasks.NewBookingStatusTask(models.BookingStatusEvent{BookingID: "b1", Status: models.BookingConfirmed})
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(ctx, task))

	task, err = tasks.NewContactTask(models.ContactEvent{ContactID: "c1"})
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(ctx, task))

	assert.Equal(t, []string{"b1:confirmed"}, n.bookings)
	assert.Equal(t, []string{"c1"}, n.contacts)
}

func TestMissingRecordsSkipRetry(t *testing.T) {
	n := &fakeNotifier{err: fmt.Errorf("booking b1: %w", repository.ErrNotFound)}
	mux := NewServeMux(n, zap.NewNop())

	task, err := tasks.NewBookingStatusTask(models.BookingStatusEvent{BookingID: "b1", Status: models.BookingCancelled})
	require.NoError(t, err)
	err = mux.ProcessTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	n.err = errors.New("smtp down")
	err = mux.ProcessTask(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestBadPayloadSkipsRetry(t *testing.T) {
	mux := NewServeMux(&fakeNotifier{}, zap.NewNop())
	err := mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeContactNew, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

type fakeBookings struct {
	booking.BookingService
	calls int
	err   error
}

func (f *fakeBookings) ExpirePending(context.Context) (int, error) {
	f.calls++
	return 2, f.err
}

func TestSchedulerJobs(t *testing.T) {
	b := &fakeBookings{}
	monitor := utils.NewHealthMonitor(nil, nil)
	s, err := NewScheduler(b, monitor, zap.NewNop())
	require.NoError(t, err)

	s.ExpireBookings()
	b.err = errors.New("mongo down")
	s.ExpireBookings()
	assert.Equal(t, 2, b.calls)

	s.ProbeHealth()
	assert.False(t, monitor.Status().CheckedAt.IsZero())
	assert.True(t, monitor.Status().Healthy())
}
