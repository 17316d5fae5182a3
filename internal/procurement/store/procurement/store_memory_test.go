package procurement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"procure/internal/procurement/models"
	vendorstore "procure/internal/procurement/store/vendor"
)

type ProcurementStoreSuite struct {
	suite.Suite
	store   *InMemory
	vendors *vendorstore.InMemory
	ctx     context.Context
}

func TestProcurementStoreSuite(t *testing.T) {
	suite.Run(t, new(ProcurementStoreSuite))
}

func (s *ProcurementStoreSuite) SetupTest() {
	s.vendors = vendorstore.NewInMemory()
	s.store = NewInMemory(s.vendors)
	s.ctx = context.Background()
}

func (s *ProcurementStoreSuite) addProcurement(title string, status models.Status, vendorID string, quantities ...int) {
	items := make([]models.Item, 0, len(quantities))
	for _, q := range quantities {
		items = append(items, models.Item{ItemName: "Widget", Quantity: q})
	}
	p := &models.Procurement{
		ID:        uuid.New(),
		Title:     title,
		Items:     items,
		Status:    status,
		CreatedAt: time.Now(),
		VendorID:  vendorID,
	}
	s.Require().NoError(s.store.Create(s.ctx, p))
}

// TestListQuantityFilter verifies the strictly-greater-than quantity
// predicate over item lists.
func (s *ProcurementStoreSuite) TestListQuantityFilter() {
	s.addProcurement("big order", models.StatusOpen, "V1", 42)
	s.addProcurement("small order", models.StatusOpen, "V1", 10)
	s.addProcurement("mixed order", models.StatusOpen, "V1", 5, 100)
	s.addProcurement("no items", models.StatusOpen, "V1")

	min := 40
	results, err := s.store.List(s.ctx, Filter{MinQuantity: &min})
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal("big order", results[0].Title)
	s.Equal("mixed order", results[1].Title)

	s.Run("boundary value is excluded", func() {
		boundary := 42
		results, err := s.store.List(s.ctx, Filter{MinQuantity: &boundary})
		s.Require().NoError(err)
		s.Require().Len(results, 1)
		s.Equal("mixed order", results[0].Title)
	})
}

// TestListStatusFilter verifies exact status matching.
func (s *ProcurementStoreSuite) TestListStatusFilter() {
	s.addProcurement("first", models.StatusOpen, "V1", 1)
	s.addProcurement("second", models.StatusApproved, "V1", 1)
	s.addProcurement("third", models.StatusOpen, "V1", 1)

	open := models.StatusOpen
	results, err := s.store.List(s.ctx, Filter{Status: &open})
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal("first", results[0].Title)
	s.Equal("third", results[1].Title)

	rejected := models.StatusRejected
	results, err = s.store.List(s.ctx, Filter{Status: &rejected})
	s.Require().NoError(err)
	s.Empty(results)
}

// TestListNoFilter verifies an empty filter returns everything in insertion
// order.
func (s *ProcurementStoreSuite) TestListNoFilter() {
	s.addProcurement("first", models.StatusOpen, "V1", 1)
	s.addProcurement("second", models.StatusApproved, "V2", 2)

	results, err := s.store.List(s.ctx, Filter{})
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal("first", results[0].Title)
	s.Equal("second", results[1].Title)
}

// TestListByVendorData verifies the rating threshold, the certification set
// membership, and the exclusion of procurements whose vendor was never
// replicated.
func (s *ProcurementStoreSuite) TestListByVendorData() {
	s.Require().NoError(s.vendors.Upsert(s.ctx, models.VendorReplica{
		ID: "good", Certifications: []string{"ISO9001", "CE"}, Rating: 4.5,
	}))
	s.Require().NoError(s.vendors.Upsert(s.ctx, models.VendorReplica{
		ID: "low-rated", Certifications: []string{"ISO9001"}, Rating: 3.9,
	}))
	s.Require().NoError(s.vendors.Upsert(s.ctx, models.VendorReplica{
		ID: "uncertified", Certifications: []string{"CE"}, Rating: 5.0,
	}))

	s.addProcurement("from good", models.StatusOpen, "good", 1)
	s.addProcurement("from low-rated", models.StatusOpen, "low-rated", 1)
	s.addProcurement("from uncertified", models.StatusOpen, "uncertified", 1)
	s.addProcurement("from unreplicated", models.StatusOpen, "ghost", 1)

	results, err := s.store.ListByVendorData(s.ctx, 4.0, "ISO9001")
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("from good", results[0].Title)

	s.Run("rating boundary is inclusive", func() {
		results, err := s.store.ListByVendorData(s.ctx, 3.9, "ISO9001")
		s.Require().NoError(err)
		s.Require().Len(results, 2)
		s.Equal("from good", results[0].Title)
		s.Equal("from low-rated", results[1].Title)
	})
}
