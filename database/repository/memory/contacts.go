package memory

import (
	"context"
	"fmt"
	"time"

	"servicehub/database/repository"
	contactRepo "servicehub/database/repository/contact"
	"servicehub/models"
)

var _ contactRepo.ContactRepository = (*ContactRepo)(nil)

type ContactRepo struct {
	t table[models.Contact]
}

func NewContactRepo() *ContactRepo {
	return &ContactRepo{t: newTable[models.Contact]()}
}

func (r *ContactRepo) Create(_ context.Context, c *models.Contact) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[c.ID]; ok {
		return fmt.Errorf("contact %s: %w", c.ID, repository.ErrDuplicate)
	}
	r.t.rows[c.ID] = *c
	return nil
}

func (r *ContactRepo) GetByID(_ context.Context, id string) (*models.Contact, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	c, ok := r.t.rows[id]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", id, repository.ErrNotFound)
	}
	return &c, nil
}

func (r *ContactRepo) List(_ context.Context, status string) ([]models.Contact, error) {
	out := r.t.filter(func(c models.Contact) bool { return status == "" || c.Status == status })
	sortNewestFirst(out, func(c models.Contact) time.Time { return c.CreatedAt })
	return out, nil
}

func (r *ContactRepo) Update(_ context.Context, c *models.Contact) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[c.ID]; !ok {
		return fmt.Errorf("contact %s: %w", c.ID, repository.ErrNotFound)
	}
	r.t.rows[c.ID] = *c
	return nil
}

func (r *ContactRepo) Delete(_ context.Context, id string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[id]; !ok {
		return fmt.Errorf("contact %s: %w", id, repository.ErrNotFound)
	}
	delete(r.t.rows, id)
	return nil
}
