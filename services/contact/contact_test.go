package contact

import (
	"context"
	"testing"

	"servicehub/database/repository"
	"servicehub/database/repository/memory"
	"servicehub/models"
	"servicehub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct{ contacts []string }

func (r *recorder) BookingStatusChanged(context.Context, string, string) {}

func (r *recorder) ContactReceived(_ context.Context, id string) { r.contacts = append(r.contacts, id) }

func TestSubmitAndManage(t *testing.T) {
	events := &recorder{}
	svc := NewDefaultContactService(memory.NewContactRepo(), events, zap.NewNop())
	ctx := context.Background()

	c, err := svc.Submit(ctx, models.Contact{Name: " Ann ", Email: "Ann@Example.com", Subject: "Refund", Message: "Please help"})
	require.NoError(t, err)
	assert.Equal(t, models.ContactNew, c.Status)
	assert.Equal(t, "ann@example.com", c.Email)
	assert.Equal(t, []string{c.ID}, events.contacts)

	list, err := svc.List(ctx, models.ContactNew)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	updated, err := svc.SetStatus(ctx, c.ID, models.ContactResolved)
	require.NoError(t, err)
	assert.Equal(t, models.ContactResolved, updated.Status)

	_, err = svc.SetStatus(ctx, c.ID, "archived")
	assert.ErrorIs(t, err, utils.ErrBadRequest)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.ErrorIs(t, svc.Delete(ctx, c.ID), repository.ErrNotFound)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewDefaultContactService(memory.NewContactRepo(), &recorder{}, zap.NewNop())
	cases := map[string]models.Contact{
		"missing message": {Name: "Ann", Email: "ann@example.com", Subject: "Hi"},
		"bad email":       {Name: "Ann", Email: "ann", Subject: "Hi", Message: "Hello"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), c)
			assert.ErrorIs(t, err, utils.ErrBadRequest)
		})
	}
}
