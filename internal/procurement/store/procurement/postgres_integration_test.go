//go:build integration

package procurement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"procure/internal/procurement/models"
	vendorstore "procure/internal/procurement/store/vendor"
	"procure/pkg/testutil/containers"
)

type PostgresProcurementStoreSuite struct {
	suite.Suite
	container *containers.PostgresContainer
	pool      *pgxpool.Pool
	store     *Postgres
	vendors   *vendorstore.Postgres
	ctx       context.Context
}

func TestPostgresProcurementStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresProcurementStoreSuite))
}

func (s *PostgresProcurementStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.container = containers.NewPostgresContainer(s.T(), vendorstore.Schema+Schema)

	pool, err := pgxpool.New(s.ctx, s.container.DSN)
	s.Require().NoError(err)
	s.pool = pool

	s.store = NewPostgres(pool)
	s.vendors = vendorstore.NewPostgres(pool)
}

func (s *PostgresProcurementStoreSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresProcurementStoreSuite) SetupTest() {
	s.Require().NoError(s.container.TruncateTables(s.ctx, "procurements", "vendors"))
}

func (s *PostgresProcurementStoreSuite) addProcurement(title string, status models.Status, vendorID string, createdAt time.Time, quantities ...int) {
	items := make([]models.Item, 0, len(quantities))
	for _, q := range quantities {
		items = append(items, models.Item{ItemName: "Widget", Quantity: q})
	}
	p := &models.Procurement{
		ID:          uuid.New(),
		Title:       title,
		Description: "test record",
		Items:       items,
		Status:      status,
		CreatedAt:   createdAt,
		VendorID:    vendorID,
	}
	s.Require().NoError(s.store.Create(s.ctx, p))
}

func (s *PostgresProcurementStoreSuite) TestCreateAndListRoundTrip() {
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	s.addProcurement("round trip", models.StatusOpen, "V1", createdAt, 42)

	results, err := s.store.List(s.ctx, Filter{})
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("round trip", results[0].Title)
	s.Equal(models.StatusOpen, results[0].Status)
	s.Equal("V1", results[0].VendorID)
	s.Require().Len(results[0].Items, 1)
	s.Equal("Widget", results[0].Items[0].ItemName)
	s.Equal(42, results[0].Items[0].Quantity)
	s.True(createdAt.Equal(results[0].CreatedAt))
}

func (s *PostgresProcurementStoreSuite) TestQuantityFilter() {
	now := time.Now().UTC()
	s.addProcurement("big", models.StatusOpen, "V1", now, 42)
	s.addProcurement("small", models.StatusOpen, "V1", now.Add(time.Second), 10)
	s.addProcurement("mixed", models.StatusOpen, "V1", now.Add(2*time.Second), 5, 100)

	min := 40
	results, err := s.store.List(s.ctx, Filter{MinQuantity: &min})
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal("big", results[0].Title)
	s.Equal("mixed", results[1].Title)
}

func (s *PostgresProcurementStoreSuite) TestStatusFilter() {
	now := time.Now().UTC()
	s.addProcurement("first", models.StatusOpen, "V1", now, 1)
	s.addProcurement("second", models.StatusApproved, "V1", now.Add(time.Second), 1)

	open := models.StatusOpen
	results, err := s.store.List(s.ctx, Filter{Status: &open})
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("first", results[0].Title)
}

func (s *PostgresProcurementStoreSuite) TestListByVendorData() {
	s.Require().NoError(s.vendors.Upsert(s.ctx, models.VendorReplica{
		ID: "good", Certifications: []string{"ISO9001", "CE"}, Rating: 4.5,
	}))
	s.Require().NoError(s.vendors.Upsert(s.ctx, models.VendorReplica{
		ID: "low", Certifications: []string{"ISO9001"}, Rating: 3.9,
	}))

	now := time.Now().UTC()
	s.addProcurement("from good", models.StatusOpen, "good", now, 1)
	s.addProcurement("from low", models.StatusOpen, "low", now.Add(time.Second), 1)
	s.addProcurement("from unreplicated", models.StatusOpen, "ghost", now.Add(2*time.Second), 1)

	results, err := s.store.ListByVendorData(s.ctx, 4.0, "ISO9001")
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("from good", results[0].Title)

	// Inclusive rating boundary.
	results, err = s.store.ListByVendorData(s.ctx, 3.9, "ISO9001")
	s.Require().NoError(err)
	s.Len(results, 2)
}
