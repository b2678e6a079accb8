package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"servicehub/models"

	"github.com/google/uuid"
)

// MemoryStorage keeps uploads in process. Used by STORAGE_BACKEND=memory and tests.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

func (s *MemoryStorage) UploadImage(_ context.Context, r io.Reader, filename, folder string) (models.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to read upload: %w", err)
	}
	id := path.Join(folder, uuid.New().String()+path.Ext(filename))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[id] = data
	return models.Image{PublicID: id, URL: "memory://" + id}, nil
}

func (s *MemoryStorage) DeleteImage(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, publicID)
	s.deleted = append(s.deleted, publicID)
	return nil
}

// Has reports whether publicID is currently stored.
func (s *MemoryStorage) Has(publicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[publicID]
	return ok
}

// Len returns the number of stored objects.
func (s *MemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Deleted returns the public IDs passed to DeleteImage, in call order.
func (s *MemoryStorage) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}
