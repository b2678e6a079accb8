package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"servicehub/database/repository"
	userRepo "servicehub/database/repository/user"
	"servicehub/models"
)

var _ userRepo.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	t table[models.User]
}

func NewUserRepo() *UserRepo {
	return &UserRepo{t: newTable[models.User]()}
}

func (r *UserRepo) Create(_ context.Context, u *models.User) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[u.ID]; ok {
		return fmt.Errorf("user %s: %w", u.ID, repository.ErrDuplicate)
	}
	for _, existing := range r.t.rows {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("user email %s: %w", u.Email, repository.ErrDuplicate)
		}
	}
	r.t.rows[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	u, ok := r.t.rows[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	for _, u := range r.t.rows {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, repository.ErrNotFound)
}

func (r *UserRepo) List(_ context.Context, role string) ([]models.User, error) {
	out := r.t.filter(func(u models.User) bool { return role == "" || u.Role == role })
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *UserRepo) ListByProvider(_ context.Context, providerID string) ([]models.User, error) {
	out := r.t.filter(func(u models.User) bool { return u.ProviderID == providerID })
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u *models.User) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[u.ID]; !ok {
		return fmt.Errorf("user %s: %w", u.ID, repository.ErrNotFound)
	}
	r.t.rows[u.ID] = *u
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[id]; !ok {
		return fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	delete(r.t.rows, id)
	return nil
}

func (r *UserRepo) Count(_ context.Context) (int64, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	return int64(len(r.t.rows)), nil
}
