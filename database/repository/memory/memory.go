// Package memory holds map-backed repositories used by DATABASE_DRIVER=memory and by tests.
// Every repository is safe for concurrent use and hands out copies.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"servicehub/models"
)

// Store bundles one instance of every repository.
type Store struct {
	Providers *ProviderRepo
	Users     *UserRepo
	Listings  *ListingRepo
	Bookings  *BookingRepo
	Contacts  *ContactRepo
	Settings  *SettingsRepo
}

func NewStore() *Store {
	return &Store{
		Providers: NewProviderRepo(),
		Users:     NewUserRepo(),
		Listings:  NewListingRepo(),
		Bookings:  NewBookingRepo(),
		Contacts:  NewContactRepo(),
		Settings:  &SettingsRepo{},
	}
}

// table is a generic id-keyed map guarded by a mutex.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []T{}
	for _, row := range t.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func sortNewestFirst[T any](rows []T, createdAt func(T) time.Time) {
	sort.SliceStable(rows, func(i, j int) bool {
		return createdAt(rows[i]).After(createdAt(rows[j]))
	})
}

func cloneImages(in []models.Image) []models.Image {
	if in == nil {
		return nil
	}
	return append([]models.Image(nil), in...)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
