package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "procure/pkg/domain-errors"
)

// Status is the lifecycle state of a procurement request. Every procurement
// enters the system as StatusOpen; the caller-supplied status on direct
// creation is ignored.
type Status string

const (
	StatusOpen     Status = "open"
	StatusInReview Status = "in-review"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus validates a caller-supplied status string against the enum.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusInReview, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", dErrors.New(dErrors.CodeValidation,
		"status must be one of the following: open, in-review, approved, rejected")
}

// Item is one line of a procurement's semi-structured item list.
type Item struct {
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

// Procurement is a procurement request. VendorID references a vendor replica
// by id but is not a cross-store foreign key; referential integrity with the
// registry is eventual, via replication.
type Procurement struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Items       []Item    `json:"items"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	VendorID    string    `json:"vendorId"`
}
