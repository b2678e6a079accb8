package memory

import (
	"context"
	"sync"

	"servicehub/database/repository"
	settingsRepo "servicehub/database/repository/settings"
	"servicehub/models"
)

var _ settingsRepo.SettingsRepository = (*SettingsRepo)(nil)

type SettingsRepo struct {
	mu      sync.RWMutex
	current *models.Settings
}

func (r *SettingsRepo) Get(_ context.Context) (*models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil, repository.ErrNotFound
	}
	s := *r.current
	return &s, nil
}

func (r *SettingsRepo) Save(_ context.Context, s *models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.current = &cp
	return nil
}
