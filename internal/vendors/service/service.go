package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	vendormetrics "procure/internal/vendors/metrics"
	"procure/internal/vendors/models"
	"procure/internal/vendors/replication"
	dErrors "procure/pkg/domain-errors"
	"procure/pkg/platform/sentinel"
)

// VendorStore is the persistence contract the registry service depends on.
type VendorStore interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id string) (*models.Vendor, error)
	List(ctx context.Context) ([]models.Vendor, error)
}

// Service orchestrates vendor registration and the replication workflow.
type Service struct {
	vendors    VendorStore
	replicator replication.VendorReplicator
	generator  replication.ProcurementGenerator
	logger     *slog.Logger
	metrics    *vendormetrics.Metrics
}

// Option configures optional service dependencies.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *vendormetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the vendor registry service.
func New(vendors VendorStore, replicator replication.VendorReplicator, generator replication.ProcurementGenerator, opts ...Option) *Service {
	s := &Service{
		vendors:    vendors,
		replicator: replicator,
		generator:  generator,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterVendor persists the vendor locally, then replicates {id,
// certifications, rating} into the procurement domain.
//
// The two writes are deliberately not transactional: a replication failure
// leaves the local vendor in place and surfaces a partial_failure error
// alongside the created vendor, so callers can tell "created but not
// replicated" apart from "creation failed". The replication seam is
// idempotent on the receiving side, so a manual retry is always safe.
func (s *Service) RegisterVendor(ctx context.Context, vendor models.Vendor) (*models.Vendor, error) {
	if err := s.vendors.Create(ctx, &vendor); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "vendor id already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create vendor")
	}
	s.metrics.IncrementVendorsCreated()

	start := time.Now()
	if err := s.replicator.Replicate(ctx, vendor); err != nil {
		s.metrics.RecordReplication("failed", time.Since(start))
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "vendor replication failed",
				"vendor_id", vendor.ID,
				"error", err,
			)
		}
		return &vendor, dErrors.Wrap(err, dErrors.CodePartialFailure,
			"vendor created; replication to procurement service failed")
	}
	s.metrics.RecordReplication("ok", time.Since(start))

	return &vendor, nil
}

// GetVendor returns the vendor with the given id.
func (s *Service) GetVendor(ctx context.Context, id string) (*models.Vendor, error) {
	if id == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "vendor id is required")
	}
	vendor, err := s.vendors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "vendor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find vendor")
	}
	return vendor, nil
}

// ListVendors returns all registered vendors.
func (s *Service) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list vendors")
	}
	if vendors == nil {
		vendors = []models.Vendor{}
	}
	return vendors, nil
}

// RequestProcurements verifies the vendor exists, then proxies the generation
// workflow to the procurement service. An absent vendor is a not-found error,
// never an empty generation result.
func (s *Service) RequestProcurements(ctx context.Context, vendorID string) ([]json.RawMessage, error) {
	vendor, err := s.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	records, err := s.generator.Generate(ctx, vendor.ID)
	if err != nil {
		if dErrors.Is(err) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "procurement generation failed")
	}
	return records, nil
}
