package repository

import (
	"context"
	"fmt"

	"postalgeo-api/internal/models"
	"postalgeo-api/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS postal_codes (
		seq BIGINT NOT NULL,
		source_id VARCHAR(64) NOT NULL,
		country VARCHAR(8) NOT NULL,
		postal_code VARCHAR(16) PRIMARY KEY,
		city TEXT NOT NULL,
		province VARCHAR(64) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	);
	CREATE INDEX IF NOT EXISTS postal_codes_seq_idx ON postal_codes (seq);
`

var columns = []string{"seq", "source_id", "country", "postal_code", "city", "province", "latitude", "longitude"}

// Repository keeps a snapshot of a loaded postal code store in PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the postal_codes table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// ReplaceAll swaps the stored snapshot for locs in a single transaction. The slice order is kept
// so that a later LoadStore iterates in the same order.
func (r *Repository) ReplaceAll(ctx context.Context, locs []models.Location) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE postal_codes"); err != nil {
		return 0, fmt.Errorf("repository: failed to truncate postal_codes: %w", err)
	}

	n, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"postal_codes"},
		columns,
		pgx.CopyFromSlice(len(locs), func(i int) ([]interface{}, error) {
			l := locs[i]
			return []interface{}{int64(i), l.ID, l.Country, l.PostalCode, l.City, l.Province, l.Latitude, l.Longitude}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy postal codes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("repository: failed to commit: %w", err)
	}
	return n, nil
}

// Count returns the number of stored postal codes
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM postal_codes").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count postal codes: %w", err)
	}
	return count, nil
}

// LoadStore reads the whole snapshot back into a new in-memory store
func (r *Repository) LoadStore(ctx context.Context) (*store.Store, error) {
	sql := `
		SELECT
			source_id,
			country,
			postal_code,
			city,
			province,
			latitude,
			longitude
		FROM postal_codes
		ORDER BY seq
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute load query: %w", err)
	}
	defer rows.Close()

	st := store.New()
	for rows.Next() {
		var loc models.Location
		err := rows.Scan(
			&loc.ID,
			&loc.Country,
			&loc.PostalCode,
			&loc.City,
			&loc.Province,
			&loc.Latitude,
			&loc.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan postal code: %w", err)
		}
		st.Put(loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return st, nil
}
