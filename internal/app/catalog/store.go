// Package catalog maintains the denormalized material catalog read model in
// a local SQLite database. The sync pipeline projects into it after every
// successful price update; the HTTP layer serves catalog listings from it
// without touching the write model.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS material_view (
	customer_id     TEXT NOT NULL,
	sales_org       TEXT NOT NULL,
	material_number TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	price           TEXT NOT NULL DEFAULT '0.00',
	currency        TEXT NOT NULL DEFAULT 'USD',
	price_unit      TEXT NOT NULL DEFAULT '',
	posnr           TEXT NOT NULL DEFAULT '',
	available       INTEGER NOT NULL DEFAULT 1,
	updated_at      TIMESTAMP NOT NULL,
	PRIMARY KEY (customer_id, sales_org, material_number)
);
CREATE INDEX IF NOT EXISTS idx_material_view_customer
	ON material_view (customer_id, sales_org);
`

type entryRow struct {
	CustomerID     string    `db:"customer_id"`
	SalesOrg       string    `db:"sales_org"`
	MaterialNumber string    `db:"material_number"`
	Description    string    `db:"description"`
	Price          string    `db:"price"`
	Currency       string    `db:"currency"`
	PriceUnit      string    `db:"price_unit"`
	Posnr          string    `db:"posnr"`
	Available      bool      `db:"available"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ListRequest filters and pages a catalog listing.
type ListRequest struct {
	CustomerID string
	SalesOrg   string
	// Search matches material number or description, case-insensitive
	// substring.
	Search string
	Limit  int
	Offset int
}

// ListResult is one page of catalog entries plus the unpaged total.
type ListResult struct {
	Entries []contracts.MaterialViewEntry
	Total   int
}

// Store is the SQLite-backed catalog read model.
type Store struct {
	db *sqlx.DB
}

var _ contracts.CatalogProjection = (*Store)(nil)

// Open opens (and migrates) the catalog database at path. Use ":memory:"
// for tests.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent projection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertMaterialView writes one projected row.
func (s *Store) UpsertMaterialView(ctx context.Context, entry *contracts.MaterialViewEntry) error {
	if entry == nil {
		return errors.New("catalog: nil entry")
	}
	const q = `
INSERT INTO material_view
	(customer_id, sales_org, material_number, description, price, currency,
	 price_unit, posnr, available, updated_at)
VALUES
	(:customer_id, :sales_org, :material_number, :description, :price, :currency,
	 :price_unit, :posnr, :available, :updated_at)
ON CONFLICT (customer_id, sales_org, material_number) DO UPDATE SET
	description = excluded.description,
	price       = excluded.price,
	currency    = excluded.currency,
	price_unit  = excluded.price_unit,
	posnr       = excluded.posnr,
	available   = excluded.available,
	updated_at  = excluded.updated_at`

	row := entryRow{
		CustomerID:     entry.CustomerID,
		SalesOrg:       entry.SalesOrg,
		MaterialNumber: entry.MaterialNumber,
		Description:    entry.Description,
		Price:          entry.Price,
		Currency:       entry.Currency,
		PriceUnit:      entry.PriceUnit,
		Posnr:          entry.Posnr,
		Available:      entry.Available,
		UpdatedAt:      entry.UpdatedAt.UTC(),
	}
	if _, err := s.db.NamedExecContext(ctx, q, row); err != nil {
		return fmt.Errorf("upsert material view: %w", err)
	}
	return nil
}

// List returns one page of the customer's catalog ordered by material
// number.
func (s *Store) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	if req.CustomerID == "" {
		return nil, domain.ErrEmptyCustomerID
	}
	if req.SalesOrg == "" {
		return nil, domain.ErrEmptySalesOrg
	}
	if req.Limit <= 0 || req.Limit > 200 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	where := "customer_id = ? AND sales_org = ?"
	args := []any{req.CustomerID, req.SalesOrg}
	if req.Search != "" {
		where += " AND (LOWER(material_number) LIKE ? OR LOWER(description) LIKE ?)"
		pattern := "%" + strings.ToLower(req.Search) + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM material_view WHERE "+where, args...); err != nil {
		return nil, fmt.Errorf("count material view: %w", err)
	}

	var rows []entryRow
	q := "SELECT * FROM material_view WHERE " + where + " ORDER BY material_number LIMIT ? OFFSET ?"
	args = append(args, req.Limit, req.Offset)
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list material view: %w", err)
	}

	entries := make([]contracts.MaterialViewEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, contracts.MaterialViewEntry{
			CustomerID:     r.CustomerID,
			SalesOrg:       r.SalesOrg,
			MaterialNumber: r.MaterialNumber,
			Description:    r.Description,
			Price:          r.Price,
			Currency:       r.Currency,
			PriceUnit:      r.PriceUnit,
			Posnr:          r.Posnr,
			Available:      r.Available,
			UpdatedAt:      r.UpdatedAt,
		})
	}
	return &ListResult{Entries: entries, Total: total}, nil
}
