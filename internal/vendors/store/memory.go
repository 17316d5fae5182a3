package store

import (
	"context"
	"sync"

	"procure/internal/vendors/models"
	"procure/pkg/platform/sentinel"
)

// InMemory is a map-backed vendor store for tests and local development.
type InMemory struct {
	mu      sync.RWMutex
	vendors map[string]models.Vendor
	order   []string
}

func NewInMemory() *InMemory {
	return &InMemory{
		vendors: make(map[string]models.Vendor),
	}
}

// Create persists a vendor, rejecting duplicate ids.
func (s *InMemory) Create(_ context.Context, vendor *models.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.vendors[vendor.ID]; exists {
		return sentinel.ErrConflict
	}
	s.vendors[vendor.ID] = *vendor
	s.order = append(s.order, vendor.ID)
	return nil
}

// FindByID returns the vendor with the given id, or sentinel.ErrNotFound.
func (s *InMemory) FindByID(_ context.Context, id string) (*models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vendor, exists := s.vendors[id]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return &vendor, nil
}

// List returns all vendors in insertion order.
func (s *InMemory) List(_ context.Context) ([]models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Vendor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.vendors[id])
	}
	return out, nil
}
