package handler

import (
	"strings"

	"procure/internal/procurement/models"
	"procure/internal/procurement/service"
	dErrors "procure/pkg/domain-errors"
	platformstrings "procure/pkg/platform/strings"
)

// UpsertVendorRequest is the HTTP request body for the internal replication
// endpoint POST /api/vendors.
type UpsertVendorRequest struct {
	ID             string   `json:"id"`
	Certifications []string `json:"certifications"`
	Rating         *float64 `json:"rating"`
}

// Validate mirrors the registry's vendor invariants; the replica must never
// be looser than the original.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *UpsertVendorRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.ID = strings.TrimSpace(r.ID)
	if r.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "id is required")
	}
	r.Certifications = platformstrings.DedupeAndTrim(r.Certifications)
	if len(r.Certifications) == 0 {
		return dErrors.New(dErrors.CodeValidation, "certifications must be a non-empty array")
	}
	if r.Rating == nil {
		return dErrors.New(dErrors.CodeValidation, "rating is required and must be numeric")
	}
	return nil
}

// Replica returns the validated vendor replica.
func (r *UpsertVendorRequest) Replica() models.VendorReplica {
	return models.VendorReplica{
		ID:             r.ID,
		Certifications: r.Certifications,
		Rating:         *r.Rating,
	}
}

// GenerateRequest is the HTTP request body for POST /api/procurements/generate.
type GenerateRequest struct {
	VendorID string `json:"vendorId"`
}

// Validate requires a vendor id before the catalog gateway is touched.
func (r *GenerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.VendorID = strings.TrimSpace(r.VendorID)
	if r.VendorID == "" {
		return dErrors.New(dErrors.CodeValidation, "vendorId is required")
	}
	return nil
}

// CreateProcurementRequest is the HTTP request body for direct creation via
// POST /api/procurements. A caller-supplied status is accepted in the payload
// but ignored: the service forces every new procurement to open.
type CreateProcurementRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Items       []models.Item `json:"items"`
	Status      string        `json:"status"`
	VendorID    string        `json:"vendorId"`
}

// Validate checks the procurement shape. Status is deliberately not
// validated; it is discarded regardless of its value.
func (r *CreateProcurementRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	for _, item := range r.Items {
		if item.Quantity < 0 {
			return dErrors.New(dErrors.CodeValidation, "item quantity must not be negative")
		}
	}
	return nil
}

// Input returns the validated service input.
func (r *CreateProcurementRequest) Input() service.NewProcurement {
	return service.NewProcurement{
		Title:       r.Title,
		Description: r.Description,
		Items:       r.Items,
		VendorID:    r.VendorID,
	}
}
