// README: Store directory persistence backed by PostgreSQL.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("store not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const storeColumns = `
	id, name, address, lat, lng, radius_km, coverage_cities,
	delivery_fee, service_fee, minimum_order, tax_rate_percent,
	is_active, created_at, updated_at`

func (r *Repo) Create(ctx context.Context, s *Store) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO stores (
			id, name, address, lat, lng, radius_km, coverage_cities,
			delivery_fee, service_fee, minimum_order, tax_rate_percent,
			is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14
		)`,
		s.ID, s.Name, s.Address,
		s.Position.Lat, s.Position.Lng,
		s.RadiusKm, s.CoverageCities,
		s.DeliveryFee, s.ServiceFee, s.MinimumOrder, s.TaxRatePercent,
		s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *Repo) Update(ctx context.Context, s *Store) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE stores
		SET name = $2, address = $3, lat = $4, lng = $5, radius_km = $6,
		    coverage_cities = $7, delivery_fee = $8, service_fee = $9,
		    minimum_order = $10, tax_rate_percent = $11, is_active = $12,
		    updated_at = $13
		WHERE id = $1`,
		s.ID, s.Name, s.Address,
		s.Position.Lat, s.Position.Lng,
		s.RadiusKm, s.CoverageCities,
		s.DeliveryFee, s.ServiceFee, s.MinimumOrder, s.TaxRatePercent,
		s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE stores SET is_active = $2, updated_at = NOW() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Store, error) {
	row := r.db.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
	s, err := scanStore(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repo) List(ctx context.Context, activeOnly bool) ([]Store, error) {
	q := `SELECT ` + storeColumns + ` FROM stores ORDER BY created_at, id`
	if activeOnly {
		q = `SELECT ` + storeColumns + ` FROM stores WHERE is_active ORDER BY created_at, id`
	}
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func scanStore(row pgx.Row) (*Store, error) {
	var s Store
	err := row.Scan(
		&s.ID, &s.Name, &s.Address,
		&s.Position.Lat, &s.Position.Lng,
		&s.RadiusKm, &s.CoverageCities,
		&s.DeliveryFee, &s.ServiceFee, &s.MinimumOrder, &s.TaxRatePercent,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
