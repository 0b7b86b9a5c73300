package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cornerstore/model"
	"cornerstore/store"

	"github.com/shopspring/decimal"
)

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// lookupErr maps a store miss to ErrNotFound and wraps anything else with
// the failing operation.
func lookupErr(err error, what string, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%s with ID %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("%s %d: %w", what, id, err)
}

// maxPrice is the first value that no longer fits products.price NUMERIC(10,2).
var maxPrice = decimal.New(1, 8)

// validatePrice accepts positive prices with at most two decimal places that
// fit the price column, so what is stored is exactly what was sent.
func validatePrice(price decimal.Decimal) error {
	switch {
	case !price.IsPositive():
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidArgument)
	case !price.Equal(price.Round(2)):
		return fmt.Errorf("%w: price %s has more than two decimal places", ErrInvalidArgument, price)
	case price.GreaterThanOrEqual(maxPrice):
		return fmt.Errorf("%w: price %s must be less than %s", ErrInvalidArgument, price, maxPrice)
	}
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// --- cashiers ---

func (s *Service) ListCashiers(ctx context.Context) ([]CashierDTO, error) {
	rows, err := s.store.ListCashiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cashiers: %w", err)
	}
	out := make([]CashierDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, toCashierDTO(c))
	}
	return out, nil
}

// GetCashier returns the cashier with every order, line item and product.
func (s *Service) GetCashier(ctx context.Context, id int64) (CashierDetailsDTO, error) {
	c, err := s.store.GetCashier(ctx, id)
	if err != nil {
		return CashierDetailsDTO{}, lookupErr(err, "cashier", id)
	}
	orders, err := s.store.ListOrdersByCashier(ctx, id)
	if err != nil {
		return CashierDetailsDTO{}, fmt.Errorf("list orders of cashier %d: %w", id, err)
	}
	lines, err := s.store.ListOrderLines(ctx, orderIDs(orders))
	if err != nil {
		return CashierDetailsDTO{}, fmt.Errorf("list order lines: %w", err)
	}
	attachLines(orders, lines)

	out := CashierDetailsDTO{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Orders:    make([]CashierOrderDTO, 0, len(orders)),
	}
	for _, o := range orders {
		out.Orders = append(out.Orders, toCashierOrder(o))
	}
	return out, nil
}

func (s *Service) CreateCashier(ctx context.Context, in CreateCashierInput) (CashierDTO, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return CashierDTO{}, fmt.Errorf("%w: cashier firstName and lastName are required", ErrInvalidArgument)
	}
	id, err := s.store.CreateCashier(ctx, first, last)
	if err != nil {
		return CashierDTO{}, fmt.Errorf("create cashier: %w", err)
	}
	return CashierDTO{ID: id, FirstName: first, LastName: last}, nil
}

// --- categories ---

func (s *Service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]CategoryDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, toCategoryDTO(c))
	}
	return out, nil
}

// --- products ---

// ListProducts filters by a case-insensitive substring of the product name
// or the category name. A blank search returns everything.
func (s *Service) ListProducts(ctx context.Context, search string) ([]ProductDTO, error) {
	rows, err := s.store.ListProducts(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, toProductDTO(p))
	}
	return out, nil
}

func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (ProductDTO, error) {
	name := strings.TrimSpace(in.ProductName)
	brand := strings.TrimSpace(in.Brand)
	if name == "" || brand == "" {
		return ProductDTO{}, fmt.Errorf("%w: productName and brand are required", ErrInvalidArgument)
	}
	if err := validatePrice(in.Price); err != nil {
		return ProductDTO{}, err
	}

	cat, err := s.store.GetCategory(ctx, in.CategoryID)
	if errors.Is(err, store.ErrNotFound) {
		return ProductDTO{}, fmt.Errorf("%w: category with ID %d does not exist", ErrInvalidReference, in.CategoryID)
	}
	if err != nil {
		return ProductDTO{}, fmt.Errorf("get category %d: %w", in.CategoryID, err)
	}

	p := model.Product{ProductName: name, Brand: brand, Price: in.Price, CategoryID: cat.ID, Category: &cat}
	id, err := s.store.CreateProduct(ctx, p)
	if err != nil {
		return ProductDTO{}, fmt.Errorf("create product: %w", err)
	}
	p.ID = id
	return toProductDTO(p), nil
}

// UpdateProductPrice overwrites the price only. Totals of existing orders
// that reference the product change with it.
func (s *Service) UpdateProductPrice(ctx context.Context, id int64, price decimal.Decimal) (ProductDTO, error) {
	if err := validatePrice(price); err != nil {
		return ProductDTO{}, err
	}
	if err := s.store.UpdateProductPrice(ctx, id, price); err != nil {
		return ProductDTO{}, lookupErr(err, "product", id)
	}
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return ProductDTO{}, lookupErr(err, "product", id)
	}
	return toProductDTO(p), nil
}
