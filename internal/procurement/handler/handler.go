package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"procure/internal/procurement/models"
	"procure/internal/procurement/service"
	dErrors "procure/pkg/domain-errors"
	"procure/pkg/platform/httputil"
	"procure/pkg/requestcontext"
)

// Service defines the procurement catalog operations the handler exposes.
type Service interface {
	UpsertVendor(ctx context.Context, vendor models.VendorReplica) (*models.VendorReplica, error)
	AddProcurement(ctx context.Context, input service.NewProcurement) (*models.Procurement, error)
	ListProcurements(ctx context.Context) ([]models.Procurement, error)
	FilterByQuantity(ctx context.Context, minQuantity int) ([]models.Procurement, error)
	FilterByStatus(ctx context.Context, status string) ([]models.Procurement, error)
	FilterByVendorData(ctx context.Context, minRating float64, certification string) ([]models.Procurement, error)
	Generate(ctx context.Context, vendorID string) ([]models.Procurement, error)
}

// Handler wires procurement catalog endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a procurement handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts procurement catalog endpoints on the router. The
// filter-by-* routes must be registered before chi would swallow them into a
// path parameter, so they are explicit literals.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/vendors", h.HandleUpsertVendor)
	r.Get("/api/procurements", h.HandleListProcurements)
	r.Get("/api/procurements/filter-by-quantity", h.HandleFilterByQuantity)
	r.Get("/api/procurements/filter-by-status", h.HandleFilterByStatus)
	r.Get("/api/procurements/filter-by-certification-and-rating", h.HandleFilterByVendorData)
	r.Post("/api/procurements/generate", h.HandleGenerate)
	r.Post("/api/procurements", h.HandleCreateProcurement)
}

// HandleUpsertVendor handles the internal replication endpoint. Idempotent:
// replaying the same payload leaves exactly one replica for the id.
func (h *Handler) HandleUpsertVendor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UpsertVendorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	vendor, err := h.service.UpsertVendor(ctx, req.Replica())
	if err != nil {
		h.logger.ErrorContext(ctx, "vendor upsert failed",
			"request_id", requestID,
			"vendor_id", req.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, vendor)
}

// HandleListProcurements handles GET /api/procurements.
func (h *Handler) HandleListProcurements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	procurements, err := h.service.ListProcurements(ctx)
	if err != nil {
		h.logError(ctx, "procurement listing failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, procurements)
}

// HandleFilterByQuantity handles GET /api/procurements/filter-by-quantity.
func (h *Handler) HandleFilterByQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := r.URL.Query().Get("minQuantity")
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "minQuantity is required"))
		return
	}
	minQuantity, err := strconv.Atoi(raw)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "minQuantity must be numeric"))
		return
	}

	procurements, err := h.service.FilterByQuantity(ctx, minQuantity)
	if err != nil {
		h.logError(ctx, "quantity filter failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, procurements)
}

// HandleFilterByStatus handles GET /api/procurements/filter-by-status.
func (h *Handler) HandleFilterByStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := r.URL.Query().Get("status")
	if status == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "status is required"))
		return
	}

	procurements, err := h.service.FilterByStatus(ctx, status)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logError(ctx, "status filter failed", err)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, procurements)
}

// HandleFilterByVendorData handles
// GET /api/procurements/filter-by-certification-and-rating.
func (h *Handler) HandleFilterByVendorData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawRating := r.URL.Query().Get("minVendorRating")
	if rawRating == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "minVendorRating is required"))
		return
	}
	minRating, err := strconv.ParseFloat(rawRating, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "minVendorRating must be numeric"))
		return
	}
	certification := r.URL.Query().Get("isoCertification")
	if certification == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "isoCertification is required"))
		return
	}

	procurements, err := h.service.FilterByVendorData(ctx, minRating, certification)
	if err != nil {
		h.logError(ctx, "vendor data filter failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, procurements)
}

// HandleGenerate handles POST /api/procurements/generate.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	procurements, err := h.service.Generate(ctx, req.VendorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "procurement generation failed",
			"request_id", requestID,
			"vendor_id", req.VendorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, procurements)
}

// HandleCreateProcurement handles POST /api/procurements.
func (h *Handler) HandleCreateProcurement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateProcurementRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	procurement, err := h.service.AddProcurement(ctx, req.Input())
	if err != nil {
		h.logger.ErrorContext(ctx, "procurement creation failed",
			"request_id", requestID,
			"vendor_id", req.VendorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, procurement)
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
