package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"procure/internal/procurement/catalog"
	"procure/internal/procurement/models"
	"procure/internal/procurement/service"
	procstore "procure/internal/procurement/store/procurement"
	vendorstore "procure/internal/procurement/store/vendor"
	"procure/pkg/testutil"
)

// HandlerSuite drives the catalog endpoints through a chi router backed by
// real in-memory stores; only the catalog gateway is mocked.
type HandlerSuite struct {
	suite.Suite
	router  http.Handler
	vendors *vendorstore.InMemory
	catalog *catalog.Mock
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.vendors = vendorstore.NewInMemory()
	s.catalog = &catalog.Mock{Product: catalog.Product{Name: "Widget", Amount: 42}}

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(procstore.NewInMemory(s.vendors), s.vendors, s.catalog, service.WithLogger(logger))

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	s.router = r
}

func (s *HandlerSuite) upsertVendor(id string, certifications []string, rating float64) {
	payload := map[string]any{"id": id, "certifications": certifications, "rating": rating}
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/vendors", payload)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
}

func (s *HandlerSuite) createProcurement(payload map[string]any) *models.Procurement {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/procurements", payload)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	return testutil.UnmarshalResponse[models.Procurement](s.T(), rr)
}

// TestUpsertVendor verifies the replication endpoint is idempotent and guards
// its invariants.
func (s *HandlerSuite) TestUpsertVendor() {
	s.Run("replaying the same payload leaves one replica", func() {
		s.upsertVendor("V1", []string{"ISO9001"}, 4.5)
		s.upsertVendor("V1", []string{"ISO9001"}, 4.5)

		count, err := s.vendors.Count(context.Background())
		s.Require().NoError(err)
		s.Equal(1, count)
	})

	s.Run("missing rating fails validation", func() {
		payload := map[string]any{"id": "V2", "certifications": []string{"ISO9001"}}
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/vendors", payload)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertErrorCode(s.T(), rr, "validation_error")
	})
}

// TestCreateProcurement verifies direct creation, including that a
// caller-supplied status is discarded.
func (s *HandlerSuite) TestCreateProcurement() {
	created := s.createProcurement(map[string]any{
		"title":    "Office chairs",
		"items":    []map[string]any{{"itemName": "Chair", "quantity": 12}},
		"status":   "approved",
		"vendorId": "V1",
	})

	s.Equal("Office chairs", created.Title)
	s.Equal(models.StatusOpen, created.Status, "caller-supplied status must be discarded")
	s.NotEmpty(created.ID)

	s.Run("negative quantity fails validation", func() {
		payload := map[string]any{
			"title": "bad",
			"items": []map[string]any{{"itemName": "Chair", "quantity": -1}},
		}
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/procurements", payload)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

// TestListProcurements verifies the unfiltered listing.
func (s *HandlerSuite) TestListProcurements() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/procurements")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.JSONEq("[]", rr.Body.String())
}

// TestFilterByQuantity verifies parameter validation and the threshold.
func (s *HandlerSuite) TestFilterByQuantity() {
	s.createProcurement(map[string]any{
		"title": "big", "items": []map[string]any{{"itemName": "Widget", "quantity": 42}},
	})
	s.createProcurement(map[string]any{
		"title": "small", "items": []map[string]any{{"itemName": "Widget", "quantity": 10}},
	})

	s.Run("missing parameter", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/procurements/filter-by-quantity")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertErrorCode(s.T(), rr, "validation_error")
	})

	s.Run("non-numeric parameter", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/procurements/filter-by-quantity?minQuantity=lots")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("returns only procurements above the threshold", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/procurements/filter-by-quantity?minQuantity=40")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		results := testutil.UnmarshalResponse[[]models.Procurement](s.T(), rr)
		s.Require().Len(*results, 1)
		s.Equal("big", (*results)[0].Title)
	})
}

// TestFilterByStatus verifies exact matching and status validation.
func (s *HandlerSuite) TestFilterByStatus() {
	s.createProcurement(map[string]any{"title": "open one"})

	s.Run("unknown status fails validation", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/procurements/filter-by-status?status=pending")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("matching status returns records", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/procurements/filter-by-status?status=open")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		results := testutil.UnmarshalResponse[[]models.Procurement](s.T(), rr)
		s.Len(*results, 1)
	})

	s.Run("non-matching status returns an empty list", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/procurements/filter-by-status?status=rejected")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.JSONEq("[]", rr.Body.String())
	})
}

// TestFilterByVendorData verifies both query parameters are required and the
// cross-store filter applies.
func (s *HandlerSuite) TestFilterByVendorData() {
	s.upsertVendor("good", []string{"ISO9001"}, 4.5)
	s.upsertVendor("low", []string{"ISO9001"}, 2.0)
	s.createProcurement(map[string]any{"title": "from good", "vendorId": "good"})
	s.createProcurement(map[string]any{"title": "from low", "vendorId": "low"})

	s.Run("missing rating parameter", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/procurements/filter-by-certification-and-rating?isoCertification=ISO9001")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("missing certification parameter", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/procurements/filter-by-certification-and-rating?minVendorRating=4")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("filters on the replicated vendor attributes", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/procurements/filter-by-certification-and-rating?minVendorRating=4&isoCertification=ISO9001")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		results := testutil.UnmarshalResponse[[]models.Procurement](s.T(), rr)
		s.Require().Len(*results, 1)
		s.Equal("from good", (*results)[0].Title)
	})
}

// TestGenerate verifies the generation endpoint end to end.
func (s *HandlerSuite) TestGenerate() {
	s.Run("missing vendorId fails validation", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/procurements/generate", map[string]any{})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("returns the five-record batch in label order", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/procurements/generate", map[string]any{"vendorId": "V1"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		var results []models.Procurement
		s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &results))
		s.Require().Len(results, 5)
		s.Equal("Request A", results[0].Title)
		s.Equal("Request E", results[4].Title)
		s.Equal("Need 42 units of Widget", results[0].Description)
	})
}
