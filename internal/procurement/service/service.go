package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"procure/internal/procurement/catalog"
	procmetrics "procure/internal/procurement/metrics"
	"procure/internal/procurement/models"
	procstore "procure/internal/procurement/store/procurement"
	dErrors "procure/pkg/domain-errors"
	"procure/pkg/requestcontext"
)

// ProcurementStore is the persistence contract for procurement records.
type ProcurementStore interface {
	Create(ctx context.Context, p *models.Procurement) error
	List(ctx context.Context, filter procstore.Filter) ([]models.Procurement, error)
	ListByVendorData(ctx context.Context, minRating float64, certification string) ([]models.Procurement, error)
}

// VendorStore is the persistence contract for replicated vendors.
type VendorStore interface {
	Upsert(ctx context.Context, vendor models.VendorReplica) error
}

// Service orchestrates the procurement catalog: vendor replication intake,
// procurement creation, the generation fan-out, and filtered listings.
type Service struct {
	procurements ProcurementStore
	vendors      VendorStore
	catalog      catalog.Client
	logger       *slog.Logger
	metrics      *procmetrics.Metrics
}

// Option configures optional service dependencies.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *procmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the procurement catalog service.
func New(procurements ProcurementStore, vendors VendorStore, catalogClient catalog.Client, opts ...Option) *Service {
	s := &Service{
		procurements: procurements,
		vendors:      vendors,
		catalog:      catalogClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpsertVendor is the replication consumer: insert-or-update by id, so the
// producer can safely call it any number of times for the same vendor.
func (s *Service) UpsertVendor(ctx context.Context, vendor models.VendorReplica) (*models.VendorReplica, error) {
	if err := s.vendors.Upsert(ctx, vendor); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to upsert vendor replica")
	}
	return &vendor, nil
}

// NewProcurement is the direct-creation input. Any caller-supplied status is
// absent by design: every procurement enters the system open.
type NewProcurement struct {
	Title       string
	Description string
	Items       []models.Item
	VendorID    string
}

// AddProcurement persists a procurement with a system-generated id, a
// server-side creation timestamp, and status forced to open.
func (s *Service) AddProcurement(ctx context.Context, input NewProcurement) (*models.Procurement, error) {
	p := &models.Procurement{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Items:       input.Items,
		Status:      models.StatusOpen,
		CreatedAt:   requestcontext.Now(ctx),
		VendorID:    input.VendorID,
	}
	if p.Items == nil {
		p.Items = []models.Item{}
	}
	if err := s.procurements.Create(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create procurement")
	}
	s.metrics.IncrementCreated("direct")
	return p, nil
}

// ListProcurements returns all procurement records.
func (s *Service) ListProcurements(ctx context.Context) ([]models.Procurement, error) {
	s.metrics.IncrementFilterQuery("none")
	return s.list(ctx, procstore.Filter{})
}

// FilterByQuantity returns procurements where at least one item's quantity
// exceeds minQuantity.
func (s *Service) FilterByQuantity(ctx context.Context, minQuantity int) ([]models.Procurement, error) {
	s.metrics.IncrementFilterQuery("quantity")
	return s.list(ctx, procstore.Filter{MinQuantity: &minQuantity})
}

// FilterByStatus returns procurements whose status equals the given value
// exactly. Invalid status strings fail validation before the store is
// queried.
func (s *Service) FilterByStatus(ctx context.Context, status string) ([]models.Procurement, error) {
	parsed, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementFilterQuery("status")
	return s.list(ctx, procstore.Filter{Status: &parsed})
}

// FilterByVendorData returns procurements whose replicated vendor has
// rating >= minRating and the certification in its set.
func (s *Service) FilterByVendorData(ctx context.Context, minRating float64, certification string) ([]models.Procurement, error) {
	if strings.TrimSpace(certification) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "isoCertification is required")
	}
	s.metrics.IncrementFilterQuery("vendor_data")
	procurements, err := s.procurements.ListByVendorData(ctx, minRating, certification)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to filter procurements by vendor data")
	}
	if procurements == nil {
		procurements = []models.Procurement{}
	}
	return procurements, nil
}

func (s *Service) list(ctx context.Context, filter procstore.Filter) ([]models.Procurement, error) {
	procurements, err := s.procurements.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list procurements")
	}
	if procurements == nil {
		procurements = []models.Procurement{}
	}
	return procurements, nil
}
