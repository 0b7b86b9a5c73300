package store

import (
	"context"
	"time"

	"cornerstore/model"

	"github.com/shopspring/decimal"
)

// OrderFilter narrows ListOrders. A nil PaidFrom means no date filter;
// otherwise only orders with PaidFrom <= paid_on_date < PaidTo match.
type OrderFilter struct {
	PaidFrom *time.Time
	PaidTo   *time.Time
}

type Store interface {
	ListCashiers(ctx context.Context) ([]model.Cashier, error)
	GetCashier(ctx context.Context, id int64) (model.Cashier, error)
	CreateCashier(ctx context.Context, firstName, lastName string) (int64, error)

	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)

	ListProducts(ctx context.Context, search string) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (int64, error)
	UpdateProductPrice(ctx context.Context, id int64, price decimal.Decimal) error

	CreateOrder(ctx context.Context, o model.Order) (int64, error)
	GetOrder(ctx context.Context, id int64) (model.Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]model.Order, error)
	ListOrdersByCashier(ctx context.Context, cashierID int64) ([]model.Order, error)
	ListOrderLines(ctx context.Context, orderIDs []int64) ([]model.OrderProduct, error)
	DeleteOrder(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
	Close() error
}
