package store

import (
	"context"
	"database/sql"
	"strings"

	"cornerstore/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const productColumns = `SELECT p.id, p.product_name, p.brand, p.price, p.category_id, c.category_name
	FROM products p
	JOIN categories c ON c.id = p.category_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(r rowScanner) (model.Product, error) {
	var p model.Product
	var cat model.Category
	if err := r.Scan(&p.ID, &p.ProductName, &p.Brand, &p.Price, &p.CategoryID, &cat.CategoryName); err != nil {
		return model.Product{}, err
	}
	cat.ID = p.CategoryID
	p.Category = &cat
	return p, nil
}

func collectProducts(rows *sql.Rows) ([]model.Product, error) {
	defer rows.Close()
	out := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// likePattern turns a search term into an ILIKE substring pattern with the
// LIKE wildcards escaped.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

// ListProducts returns products with their category. A non-empty search
// matches, case-insensitively, a substring of either the product name or the
// category name.
func (s *PostgresStore) ListProducts(ctx context.Context, search string) ([]model.Product, error) {
	query := productColumns
	var args []any
	if search != "" {
		query += ` WHERE p.product_name ILIKE $1 OR c.category_name ILIKE $1`
		args = append(args, likePattern(search))
	}
	query += ` ORDER BY p.id`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	p, err := scanProduct(s.DB.QueryRowContext(ctx, productColumns+` WHERE p.id = $1`, id))
	if err != nil {
		return model.Product{}, notFound(err, "product", id)
	}
	return p, nil
}

// GetProductsByIDs fetches every matching product in one round trip. Ids
// that do not exist are simply absent from the result.
func (s *PostgresStore) GetProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	rows, err := s.DB.QueryContext(ctx, productColumns+` WHERE p.id = ANY($1) ORDER BY p.id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// CreateProduct inserts a product and returns its id
func (s *PostgresStore) CreateProduct(ctx context.Context, p model.Product) (int64, error) {
	var id int64
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO products (product_name, brand, price, category_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.ProductName, p.Brand, p.Price, p.CategoryID,
	).Scan(&id)
	return id, err
}

// UpdateProductPrice overwrites the price of a product. Nothing else changes.
func (s *PostgresStore) UpdateProductPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE products SET price = $1 WHERE id = $2`, price, id)
	if err != nil {
		return err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if ra == 0 {
		return notFound(sql.ErrNoRows, "product", id)
	}
	return nil
}
