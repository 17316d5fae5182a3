package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"golang.org/x/sync/errgroup"

	"procure/internal/procurement/models"
	dErrors "procure/pkg/domain-errors"
	"procure/pkg/requestcontext"
)

// generateBatchSize is the number of procurement requests derived from a
// single catalog read, labeled Request A through Request E.
const generateBatchSize = 5

// Generate derives a deterministic batch of procurement requests for a vendor
// from exactly one catalog gateway read and persists each one independently.
//
// The five writes run concurrently with no ordering guarantee among their
// completions, but the returned slice always follows label order A..E.
//
// Failure policy is fail-fast: the first write error fails the whole call and
// cancels the in-flight siblings. Writes that already committed stay
// committed; there is no compensating rollback.
func (s *Service) Generate(ctx context.Context, vendorID string) ([]models.Procurement, error) {
	if vendorID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "vendorId is required")
	}

	start := time.Now()

	product, err := s.catalog.FetchProduct(ctx)
	if err != nil {
		s.metrics.RecordCatalogFetch("failed")
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "catalog gateway read failed",
				"vendor_id", vendorID,
				"error", err,
			)
		}
		if dErrors.Is(err) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "catalog gateway read failed")
	}
	s.metrics.RecordCatalogFetch("ok")

	now := requestcontext.Now(ctx)
	results := make([]models.Procurement, generateBatchSize)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < generateBatchSize; i++ {
		p := models.Procurement{
			ID:          uuid.New(),
			Title:       fmt.Sprintf("Request %c", 'A'+i),
			Description: fmt.Sprintf("Need %d units of %s", product.Amount, product.Name),
			Items:       []models.Item{{ItemName: product.Name, Quantity: product.Amount}},
			Status:      models.StatusOpen,
			CreatedAt:   now,
			VendorID:    vendorID,
		}
		results[i] = p
		g.Go(func() error {
			if err := s.procurements.Create(gctx, &p); err != nil {
				return fmt.Errorf("persist %s: %w", p.Title, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "procurement generation failed")
	}

	s.metrics.ObserveGenerateLatency(time.Since(start))
	for range results {
		s.metrics.IncrementCreated("generated")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "procurement batch generated",
			"vendor_id", vendorID,
			"product", product.Name,
			"count", len(results),
		)
	}
	return results, nil
}
