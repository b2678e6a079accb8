package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"servicehub/database/repository"
	listingRepo "servicehub/database/repository/listing"
	"servicehub/models"
)

var _ listingRepo.ListingRepository = (*ListingRepo)(nil)

type ListingRepo struct {
	t table[models.Listing]
}

func NewListingRepo() *ListingRepo {
	return &ListingRepo{t: newTable[models.Listing]()}
}

func cloneListing(l models.Listing) models.Listing {
	l.Images = cloneImages(l.Images)
	if l.Cab != nil {
		cab := *l.Cab
		l.Cab = &cab
	}
	if l.Hotel != nil {
		hotel := *l.Hotel
		hotel.Amenities = cloneStrings(hotel.Amenities)
		l.Hotel = &hotel
	}
	if l.Cleaning != nil {
		cleaning := *l.Cleaning
		cleaning.ServiceAreas = cloneStrings(cleaning.ServiceAreas)
		cleaning.Includes = cloneStrings(cleaning.Includes)
		l.Cleaning = &cleaning
	}
	return l
}

func (r *ListingRepo) Create(_ context.Context, l *models.Listing) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[l.ID]; ok {
		return fmt.Errorf("listing %s: %w", l.ID, repository.ErrDuplicate)
	}
	r.t.rows[l.ID] = cloneListing(*l)
	return nil
}

func (r *ListingRepo) GetByID(_ context.Context, id string) (*models.Listing, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	l, ok := r.t.rows[id]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", id, repository.ErrNotFound)
	}
	l = cloneListing(l)
	return &l, nil
}

func matchesListing(l models.Listing, f models.ListingFilter) bool {
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	if f.ProviderID != "" && l.ProviderID != f.ProviderID {
		return false
	}
	if f.City != "" && !strings.EqualFold(l.City, f.City) {
		return false
	}
	if f.ActiveOnly && !l.Active {
		return false
	}
	if f.Query != "" && !containsFold(l.Name, f.Query) && !containsFold(l.Description, f.Query) && !containsFold(l.Location, f.Query) {
		return false
	}
	return true
}

func (r *ListingRepo) List(_ context.Context, f models.ListingFilter) ([]models.Listing, error) {
	out := r.t.filter(func(l models.Listing) bool { return matchesListing(l, f) })
	sortNewestFirst(out, func(l models.Listing) time.Time { return l.CreatedAt })

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []models.Listing{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	for i := range out {
		out[i] = cloneListing(out[i])
	}
	return out, nil
}

func (r *ListingRepo) Update(_ context.Context, l *models.Listing) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[l.ID]; !ok {
		return fmt.Errorf("listing %s: %w", l.ID, repository.ErrNotFound)
	}
	r.t.rows[l.ID] = cloneListing(*l)
	return nil
}

func (r *ListingRepo) Delete(_ context.Context, id string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[id]; !ok {
		return fmt.Errorf("listing %s: %w", id, repository.ErrNotFound)
	}
	delete(r.t.rows, id)
	return nil
}

func (r *ListingRepo) CountByCategory(_ context.Context) (map[string]int64, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	out := map[string]int64{}
	for _, l := range r.t.rows {
		out[l.Category]++
	}
	return out, nil
}
