package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cornerstore/model"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// ErrNotFound is returned when a row looked up by id does not exist.
var ErrNotFound = errors.New("not found")

// PostgresStore is a Store backed by Postgres through database/sql.
type PostgresStore struct {
	DB *sql.DB
}

// NewPostgresStore opens and pings a pool. driver is "postgres" (lib/pq) or
// "pgx" (pgx stdlib); both speak $n placeholders.
func NewPostgresStore(ctx context.Context, driver, dsn string) (*PostgresStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{DB: db}, nil
}

func (s *PostgresStore) Close() error { return s.DB.Close() }

func (s *PostgresStore) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

// inTx runs fn inside a transaction. Any error from fn rolls back; the
// transaction is committed only when fn returns nil.
func (s *PostgresStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func notFound(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return err
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// --- cashiers ---

func (s *PostgresStore) ListCashiers(ctx context.Context) ([]model.Cashier, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, first_name, last_name FROM cashiers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Cashier{}
	for rows.Next() {
		var c model.Cashier
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetCashier(ctx context.Context, id int64) (model.Cashier, error) {
	var c model.Cashier
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, first_name, last_name FROM cashiers WHERE id = $1`, id,
	).Scan(&c.ID, &c.FirstName, &c.LastName)
	if err != nil {
		return model.Cashier{}, notFound(err, "cashier", id)
	}
	return c, nil
}

// CreateCashier inserts a cashier and returns its id
func (s *PostgresStore) CreateCashier(ctx context.Context, firstName, lastName string) (int64, error) {
	var id int64
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO cashiers (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		firstName, lastName,
	).Scan(&id)
	return id, err
}

// --- categories ---

func (s *PostgresStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, category_name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, category_name FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.CategoryName)
	if err != nil {
		return model.Category{}, notFound(err, "category", id)
	}
	return c, nil
}
