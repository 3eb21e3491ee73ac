package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the requested product does not exist.
var ErrNotFound = errors.New("catalog: product not found")

// Repo reads catalog rows from Postgres.
type Repo struct {
	Pool *pgxpool.Pool
}

const getProductSQL = `
SELECT id, title, slug, unit_price, bundle_promo, legacy_bundle_promo
FROM products
WHERE id = $1`

// Get loads a single product row.
func (r Repo) Get(ctx context.Context, id string) (Product, error) {
	if r.Pool == nil {
		return Product{}, errors.New("catalog: repo not configured")
	}
	var p Product
	err := r.Pool.QueryRow(ctx, getProductSQL, id).Scan(
		&p.ID, &p.Title, &p.Slug, &p.UnitPrice, &p.BundlePromo, &p.LegacyBundlePromo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

const listProductsSQL = `
SELECT id, title, slug, unit_price, bundle_promo, legacy_bundle_promo
FROM products
ORDER BY title
LIMIT $1 OFFSET $2`

// List returns catalog rows ordered by title.
func (r Repo) List(ctx context.Context, limit, offset int) ([]Product, error) {
	if r.Pool == nil {
		return nil, errors.New("catalog: repo not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.Pool.Query(ctx, listProductsSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.UnitPrice, &p.BundlePromo, &p.LegacyBundlePromo); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
