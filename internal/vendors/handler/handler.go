package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"procure/internal/vendors/models"
	dErrors "procure/pkg/domain-errors"
	"procure/pkg/platform/httputil"
	"procure/pkg/requestcontext"
)

// Service defines the vendor registry operations the handler exposes.
type Service interface {
	RegisterVendor(ctx context.Context, vendor models.Vendor) (*models.Vendor, error)
	GetVendor(ctx context.Context, id string) (*models.Vendor, error)
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	RequestProcurements(ctx context.Context, vendorID string) ([]json.RawMessage, error)
}

// Handler wires vendor registry endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a vendor handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts vendor registry endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/vendors", h.HandleListVendors)
	r.Post("/api/vendors", h.HandleCreateVendor)
	r.Post("/api/vendors/{id}/procurements", h.HandleRequestProcurements)
}

// HandleCreateVendor handles POST /api/vendors.
//
// A replication failure after the local write succeeds is reported as a
// partial_failure envelope carrying the created vendor, so callers can tell
// it apart from a failed creation.
func (h *Handler) HandleCreateVendor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateVendorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	vendor, err := h.service.RegisterVendor(ctx, req.Vendor())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodePartialFailure) && vendor != nil {
			h.logger.WarnContext(ctx, "vendor created but not replicated",
				"request_id", requestID,
				"vendor_id", vendor.ID,
				"error", err,
			)
			httputil.WriteJSON(w, http.StatusBadGateway, map[string]any{
				"error":             string(dErrors.CodePartialFailure),
				"error_description": dErrors.MessageOf(err),
				"vendor":            vendor,
			})
			return
		}
		h.logger.ErrorContext(ctx, "vendor creation failed",
			"request_id", requestID,
			"vendor_id", req.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "vendor created",
		"request_id", requestID,
		"vendor_id", vendor.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, vendor)
}

// HandleListVendors handles GET /api/vendors.
func (h *Handler) HandleListVendors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vendors, err := h.service.ListVendors(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "vendor listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vendors)
}

// HandleRequestProcurements handles POST /api/vendors/{id}/procurements.
// Absent vendors yield 404 before any generation call is made.
func (h *Handler) HandleRequestProcurements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	vendorID := chi.URLParam(r, "id")

	records, err := h.service.RequestProcurements(ctx, vendorID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "procurement request failed",
				"request_id", requestID,
				"vendor_id", vendorID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "procurements generated for vendor",
		"request_id", requestID,
		"vendor_id", vendorID,
		"count", len(records),
	)
	httputil.WriteJSON(w, http.StatusOK, records)
}
