package procurement

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"procure/internal/procurement/models"
)

// Schema creates the procurement table. Items are stored as jsonb because the
// item list is semi-structured; quantity predicates go through
// jsonb_array_elements.
const Schema = `
CREATE TABLE IF NOT EXISTS procurements (
	id          uuid PRIMARY KEY,
	title       text NOT NULL,
	description text NOT NULL,
	items       jsonb NOT NULL,
	status      text NOT NULL,
	created_at  timestamptz NOT NULL,
	vendor_id   text NOT NULL
);
`

// Postgres persists procurements in PostgreSQL via pgx.
//
// Every caller-supplied filter value is passed as a bound parameter. Filter
// inputs are untrusted; nothing from them is ever concatenated into SQL text.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed procurement store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Create persists a procurement record.
func (s *Postgres) Create(ctx context.Context, p *models.Procurement) error {
	items, err := json.Marshal(p.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		INSERT INTO procurements (id, title, description, items, status, created_at, vendor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, items, string(p.Status), p.CreatedAt, p.VendorID)
	if err != nil {
		return fmt.Errorf("create procurement: %w", err)
	}
	return nil
}

// List returns procurements matching the filter, oldest first.
func (s *Postgres) List(ctx context.Context, filter Filter) ([]models.Procurement, error) {
	query := `
		SELECT id, title, description, items, status, created_at, vendor_id
		FROM procurements
	`
	var conditions []string
	var args []any

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.MinQuantity != nil {
		args = append(args, *filter.MinQuantity)
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM jsonb_array_elements(items) AS item
			WHERE (item->>'quantity')::int > $%d
		)`, len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list procurements: %w", err)
	}
	defer rows.Close()

	return scanProcurements(rows)
}

// ListByVendorData joins procurements against the replicated vendor table and
// keeps rows whose vendor has rating >= minRating and the certification in
// its set.
func (s *Postgres) ListByVendorData(ctx context.Context, minRating float64, certification string) ([]models.Procurement, error) {
	query := `
		SELECT p.id, p.title, p.description, p.items, p.status, p.created_at, p.vendor_id
		FROM procurements p
		JOIN vendors v ON p.vendor_id = v.id
		WHERE v.rating >= $1 AND $2 = ANY(v.certifications)
		ORDER BY p.created_at, p.id
	`
	rows, err := s.pool.Query(ctx, query, minRating, certification)
	if err != nil {
		return nil, fmt.Errorf("list procurements by vendor data: %w", err)
	}
	defer rows.Close()

	return scanProcurements(rows)
}

func scanProcurements(rows pgx.Rows) ([]models.Procurement, error) {
	var procurements []models.Procurement
	for rows.Next() {
		var p models.Procurement
		var items []byte
		var status string
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &items, &status, &p.CreatedAt, &p.VendorID); err != nil {
			return nil, fmt.Errorf("scan procurement: %w", err)
		}
		if err := json.Unmarshal(items, &p.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
		p.Status = models.Status(status)
		procurements = append(procurements, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate procurements: %w", err)
	}
	return procurements, nil
}
