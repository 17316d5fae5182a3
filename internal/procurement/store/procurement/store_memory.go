package procurement

import (
	"context"
	"errors"
	"slices"
	"sync"

	"procure/internal/procurement/models"
	"procure/pkg/platform/sentinel"
)

// Filter narrows a procurement listing. Fields are optional and currently
// applied one at a time by the service; nil means "no constraint".
type Filter struct {
	// Status keeps procurements whose status equals this value exactly.
	Status *models.Status
	// MinQuantity keeps procurements where at least one item's quantity is
	// strictly greater than this value.
	MinQuantity *int
}

// VendorLookup resolves vendor replicas for the cross-store attribute filter.
type VendorLookup interface {
	FindByID(ctx context.Context, id string) (*models.VendorReplica, error)
}

// InMemory is a slice-backed procurement store for tests and local
// development. Listing preserves insertion order.
type InMemory struct {
	mu           sync.RWMutex
	procurements []models.Procurement
	vendors      VendorLookup
}

func NewInMemory(vendors VendorLookup) *InMemory {
	return &InMemory{vendors: vendors}
}

// Create appends a procurement record.
func (s *InMemory) Create(_ context.Context, p *models.Procurement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.procurements = append(s.procurements, *p)
	return nil
}

// List returns procurements matching the filter, in insertion order.
func (s *InMemory) List(_ context.Context, filter Filter) ([]models.Procurement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Procurement
	for _, p := range s.procurements {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.MinQuantity != nil && !anyQuantityAbove(p.Items, *filter.MinQuantity) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ListByVendorData returns procurements whose vendor replica has
// rating >= minRating and the certification in its set. Procurements whose
// vendor has not been replicated yet are excluded, matching the join
// semantics of the SQL store.
func (s *InMemory) ListByVendorData(ctx context.Context, minRating float64, certification string) ([]models.Procurement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Procurement
	for _, p := range s.procurements {
		vendor, err := s.vendors.FindByID(ctx, p.VendorID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if vendor.Rating >= minRating && slices.Contains(vendor.Certifications, certification) {
			out = append(out, p)
		}
	}
	return out, nil
}

func anyQuantityAbove(items []models.Item, min int) bool {
	for _, item := range items {
		if item.Quantity > min {
			return true
		}
	}
	return false
}
