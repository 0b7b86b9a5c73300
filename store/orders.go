package store

import (
	"context"
	"database/sql"

	"cornerstore/model"

	"github.com/lib/pq"
)

const orderColumns = `SELECT o.id, o.cashier_id, o.paid_on_date, c.first_name, c.last_name
	FROM orders o
	JOIN cashiers c ON c.id = o.cashier_id`

func scanOrder(r rowScanner) (model.Order, error) {
	var o model.Order
	var c model.Cashier
	var paid sql.NullTime
	if err := r.Scan(&o.ID, &o.CashierID, &paid, &c.FirstName, &c.LastName); err != nil {
		return model.Order{}, err
	}
	c.ID = o.CashierID
	o.Cashier = &c
	o.PaidOnDate = timePtr(paid)
	return o, nil
}

func collectOrders(rows *sql.Rows) ([]model.Order, error) {
	defer rows.Close()
	out := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// CreateOrder inserts the order and all of its line items in one
// transaction. Either every row commits or none does.
func (s *PostgresStore) CreateOrder(ctx context.Context, o model.Order) (int64, error) {
	var orderID int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO orders (cashier_id, paid_on_date) VALUES ($1, $2) RETURNING id`,
			o.CashierID, nullTime(o.PaidOnDate),
		).Scan(&orderID); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO order_products (order_id, product_id, quantity) VALUES ($1, $2, $3)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, op := range o.OrderProducts {
			if _, err := stmt.ExecContext(ctx, orderID, op.ProductID, op.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// GetOrder returns the order with its cashier attached. Line items are
// loaded separately through ListOrderLines.
func (s *PostgresStore) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	o, err := scanOrder(s.DB.QueryRowContext(ctx, orderColumns+` WHERE o.id = $1`, id))
	if err != nil {
		return model.Order{}, notFound(err, "order", id)
	}
	return o, nil
}

func (s *PostgresStore) ListOrders(ctx context.Context, f OrderFilter) ([]model.Order, error) {
	query := orderColumns
	var args []any
	if f.PaidFrom != nil && f.PaidTo != nil {
		// NULL paid_on_date never satisfies the range, so open orders drop out.
		query += ` WHERE o.paid_on_date >= $1 AND o.paid_on_date < $2`
		args = append(args, *f.PaidFrom, *f.PaidTo)
	}
	query += ` ORDER BY o.id`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (s *PostgresStore) ListOrdersByCashier(ctx context.Context, cashierID int64) ([]model.Order, error) {
	rows, err := s.DB.QueryContext(ctx, orderColumns+` WHERE o.cashier_id = $1 ORDER BY o.id`, cashierID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

// ListOrderLines returns the line items of all given orders, each with its
// product and category, ordered by order id then product id.
func (s *PostgresStore) ListOrderLines(ctx context.Context, orderIDs []int64) ([]model.OrderProduct, error) {
	out := []model.OrderProduct{}
	if len(orderIDs) == 0 {
		return out, nil
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT op.order_id, op.quantity, p.id, p.product_name, p.brand, p.price, p.category_id, c.category_name
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE op.order_id = ANY($1)
		ORDER BY op.order_id, op.product_id`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var op model.OrderProduct
		var p model.Product
		var cat model.Category
		if err := rows.Scan(&op.OrderID, &op.Quantity, &p.ID, &p.ProductName, &p.Brand, &p.Price, &p.CategoryID, &cat.CategoryName); err != nil {
			return nil, err
		}
		cat.ID = p.CategoryID
		p.Category = &cat
		op.ProductID = p.ID
		op.Product = &p
		out = append(out, op)
	}
	return out, rows.Err()
}

// DeleteOrder removes the order and its line items atomically.
func (s *PostgresStore) DeleteOrder(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM order_products WHERE order_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
		if err != nil {
			return err
		}
		ra, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if ra == 0 {
			return notFound(sql.ErrNoRows, "order", id)
		}
		return nil
	})
}
