package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"procure/internal/vendors/models"
	"procure/pkg/platform/sentinel"
)

// Schema creates the vendor-service tables. Applied by migrations in
// deployment and by integration tests directly.
const Schema = `
CREATE TABLE IF NOT EXISTS vendors (
	id             text PRIMARY KEY,
	certifications text[] NOT NULL,
	rating         double precision NOT NULL
);
`

// Postgres persists vendors in PostgreSQL via database/sql.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed vendor store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Create persists a vendor. A duplicate id surfaces as sentinel.ErrConflict;
// the original row is never overwritten.
func (s *Postgres) Create(ctx context.Context, vendor *models.Vendor) error {
	query := `
		INSERT INTO vendors (id, certifications, rating)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, vendor.ID, pq.Array(vendor.Certifications), vendor.Rating)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create vendor: %w", err)
	}
	return nil
}

// FindByID returns the vendor with the given id, or sentinel.ErrNotFound.
func (s *Postgres) FindByID(ctx context.Context, id string) (*models.Vendor, error) {
	var vendor models.Vendor
	var certifications pq.StringArray
	err := s.db.QueryRowContext(ctx,
		`SELECT id, certifications, rating FROM vendors WHERE id = $1`, id,
	).Scan(&vendor.ID, &certifications, &vendor.Rating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	vendor.Certifications = certifications
	return &vendor, nil
}

// List returns all vendors.
func (s *Postgres) List(ctx context.Context) ([]models.Vendor, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, certifications, rating FROM vendors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		var vendor models.Vendor
		var certifications pq.StringArray
		if err := rows.Scan(&vendor.ID, &certifications, &vendor.Rating); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendor.Certifications = certifications
		vendors = append(vendors, vendor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return vendors, nil
}
