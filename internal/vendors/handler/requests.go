package handler

import (
	"strings"

	"procure/internal/vendors/models"
	dErrors "procure/pkg/domain-errors"
	platformstrings "procure/pkg/platform/strings"
)

// CreateVendorRequest is the HTTP request body for POST /api/vendors.
type CreateVendorRequest struct {
	ID             string   `json:"id"`
	Certifications []string `json:"certifications"`
	Rating         *float64 `json:"rating"`
}

// Validate checks the vendor creation invariants before any write happens.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateVendorRequest) Validate() error {
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

// Vendor returns the validated domain model.
func (r *CreateVendorRequest) Vendor() models.Vendor {
	return models.Vendor{
		ID:             r.ID,
		Certifications: r.Certifications,
		Rating:         *r.Rating,
	}
}
