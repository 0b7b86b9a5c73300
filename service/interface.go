package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ServiceInterface interface {
	ListCashiers(ctx context.Context) ([]CashierDTO, error)
	GetCashier(ctx context.Context, id int64) (CashierDetailsDTO, error)
	CreateCashier(ctx context.Context, in CreateCashierInput) (CashierDTO, error)

	ListCategories(ctx context.Context) ([]CategoryDTO, error)

	ListProducts(ctx context.Context, search string) ([]ProductDTO, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (ProductDTO, error)
	UpdateProductPrice(ctx context.Context, id int64, price decimal.Decimal) (ProductDTO, error)

	GetOrder(ctx context.Context, id int64) (OrderDetailsDTO, error)
	ListOrders(ctx context.Context, paidOn *time.Time) ([]OrderDetailsDTO, error)
	CreateOrder(ctx context.Context, in CreateOrderInput) (OrderDetailsDTO, error)
	DeleteOrder(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
}
