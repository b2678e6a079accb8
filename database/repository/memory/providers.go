package memory

import (
	"context"
	"fmt"
	"sort"

	"servicehub/database/repository"
	providerRepo "servicehub/database/repository/provider"
	"servicehub/models"
)

var _ providerRepo.ProviderRepository = (*ProviderRepo)(nil)

type ProviderRepo struct {
	t table[models.Provider]
}

func NewProviderRepo() *ProviderRepo {
	return &ProviderRepo{t: newTable[models.Provider]()}
}

func cloneProvider(p models.Provider) models.Provider {
	p.AdminUserIDs = cloneStrings(p.AdminUserIDs)
	if p.Logo != nil {
		logo := *p.Logo
		p.Logo = &logo
	}
	return p
}

func (r *ProviderRepo) Create(_ context.Context, p *models.Provider) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[p.ID]; ok {
		return fmt.Errorf("provider %s: %w", p.ID, repository.ErrDuplicate)
	}
	r.t.rows[p.ID] = cloneProvider(*p)
	return nil
}

func (r *ProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	p, ok := r.t.rows[id]
	if !ok {
		return nil, fmt.Errorf("provider %s: %w", id, repository.ErrNotFound)
	}
	p = cloneProvider(p)
	return &p, nil
}

func (r *ProviderRepo) List(_ context.Context, activeOnly bool) ([]models.Provider, error) {
	out := r.t.filter(func(p models.Provider) bool {
		return !activeOnly || p.Status == models.ProviderStatusActive
	})
	for i := range out {
		out[i] = cloneProvider(out[i])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProviderRepo) Update(_ context.Context, p *models.Provider) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[p.ID]; !ok {
		return fmt.Errorf("provider %s: %w", p.ID, repository.ErrNotFound)
	}
	r.t.rows[p.ID] = cloneProvider(*p)
	return nil
}

func (r *ProviderRepo) Delete(_ context.Context, id string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[id]; !ok {
		return fmt.Errorf("provider %s: %w", id, repository.ErrNotFound)
	}
	delete(r.t.rows, id)
	return nil
}

func (r *ProviderRepo) Count(_ context.Context) (int64, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	return int64(len(r.t.rows)), nil
}
