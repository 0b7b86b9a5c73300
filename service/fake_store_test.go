package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"cornerstore/model"
	"cornerstore/store"

	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory store.Store loaded with the seed fixture.
// Setting failWith makes the named method return that error.
type fakeStore struct {
	cashiers   map[int64]model.Cashier
	categories map[int64]model.Category
	products   map[int64]model.Product
	orders     map[int64]model.Order // OrderProducts hold ids and quantities only
	nextID     int64

	failWith map[string]error
	calls    []string
}

var (
	seedToday     = time.Date(2024, 3, 2, 10, 15, 0, 0, time.UTC)
	seedYesterday = seedToday.AddDate(0, 0, -1)
)

func newFakeStore() *fakeStore {
	today, yesterday := seedToday, seedYesterday
	return &fakeStore{
		cashiers: map[int64]model.Cashier{
			1: {ID: 1, FirstName: "James", LastName: "Smith"},
			2: {ID: 2, FirstName: "Sarah", LastName: "Johnson"},
		},
		categories: map[int64]model.Category{
			1: {ID: 1, CategoryName: "Beverages"},
			2: {ID: 2, CategoryName: "Snacks"},
		},
		products: map[int64]model.Product{
			1: {ID: 1, ProductName: "Coca-Cola", Brand: "Coca-Cola", Price: decimal.RequireFromString("1.50"), CategoryID: 1},
			2: {ID: 2, ProductName: "Pepsi", Brand: "Pepsi", Price: decimal.RequireFromString("1.40"), CategoryID: 1},
			3: {ID: 3, ProductName: "Lays Chips", Brand: "Lays", Price: decimal.RequireFromString("2.00"), CategoryID: 2},
		},
		orders: map[int64]model.Order{
			1: {ID: 1, CashierID: 1, PaidOnDate: &today, OrderProducts: []model.OrderProduct{
				{OrderID: 1, ProductID: 1, Quantity: 2},
				{OrderID: 1, ProductID: 3, Quantity: 1},
			}},
			2: {ID: 2, CashierID: 2, PaidOnDate: &yesterday, OrderProducts: []model.OrderProduct{
				{OrderID: 2, ProductID: 2, Quantity: 3},
			}},
		},
		nextID:   100,
		failWith: map[string]error{},
	}
}

func (f *fakeStore) enter(name string) error {
	f.calls = append(f.calls, name)
	return f.failWith[name]
}

func (f *fakeStore) called(name string) bool { return slices.Contains(f.calls, name) }

func (f *fakeStore) withCategory(p model.Product) model.Product {
	c := f.categories[p.CategoryID]
	p.Category = &c
	return p
}

func (f *fakeStore) withCashier(o model.Order) model.Order {
	c := f.cashiers[o.CashierID]
	o.Cashier = &c
	o.OrderProducts = nil
	return o
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (f *fakeStore) ListCashiers(ctx context.Context) ([]model.Cashier, error) {
	if err := f.enter("ListCashiers"); err != nil {
		return nil, err
	}
	out := []model.Cashier{}
	for _, id := range sortedKeys(f.cashiers) {
		out = append(out, f.cashiers[id])
	}
	return out, nil
}

func (f *fakeStore) GetCashier(ctx context.Context, id int64) (model.Cashier, error) {
	if err := f.enter("GetCashier"); err != nil {
		return model.Cashier{}, err
	}
	c, ok := f.cashiers[id]
	if !ok {
		return model.Cashier{}, fmt.Errorf("cashier %d: %w", id, store.ErrNotFound)
	}
	return c, nil
}

func (f *fakeStore) CreateCashier(ctx context.Context, firstName, lastName string) (int64, error) {
	if err := f.enter("CreateCashier"); err != nil {
		return 0, err
	}
	f.nextID++
	f.cashiers[f.nextID] = model.Cashier{ID: f.nextID, FirstName: firstName, LastName: lastName}
	return f.nextID, nil
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := f.enter("ListCategories"); err != nil {
		return nil, err
	}
	out := []model.Category{}
	for _, id := range sortedKeys(f.categories) {
		out = append(out, f.categories[id])
	}
	return out, nil
}

func (f *fakeStore) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	if err := f.enter("GetCategory"); err != nil {
		return model.Category{}, err
	}
	c, ok := f.categories[id]
	if !ok {
		return model.Category{}, fmt.Errorf("category %d: %w", id, store.ErrNotFound)
	}
	return c, nil
}

func (f *fakeStore) ListProducts(ctx context.Context, search string) ([]model.Product, error) {
	if err := f.enter("ListProducts"); err != nil {
		return nil, err
	}
	needle := strings.ToLower(search)
	out := []model.Product{}
	for _, id := range sortedKeys(f.products) {
		p := f.withCategory(f.products[id])
		if needle == "" ||
			strings.Contains(strings.ToLower(p.ProductName), needle) ||
			strings.Contains(strings.ToLower(p.Category.CategoryName), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if err := f.enter("GetProduct"); err != nil {
		return model.Product{}, err
	}
	p, ok := f.products[id]
	if !ok {
		return model.Product{}, fmt.Errorf("product %d: %w", id, store.ErrNotFound)
	}
	return f.withCategory(p), nil
}

func (f *fakeStore) GetProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if err := f.enter("GetProductsByIDs"); err != nil {
		return nil, err
	}
	out := []model.Product{}
	for _, id := range sortedKeys(f.products) {
		if slices.Contains(ids, id) {
			out = append(out, f.withCategory(f.products[id]))
		}
	}
	return out, nil
}

func (f *fakeStore) CreateProduct(ctx context.Context, p model.Product) (int64, error) {
	if err := f.enter("CreateProduct"); err != nil {
		return 0, err
	}
	f.nextID++
	p.ID = f.nextID
	p.Category = nil
	f.products[p.ID] = p
	return p.ID, nil
}

func (f *fakeStore) UpdateProductPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	if err := f.enter("UpdateProductPrice"); err != nil {
		return err
	}
	p, ok := f.products[id]
	if !ok {
		return fmt.Errorf("product %d: %w", id, store.ErrNotFound)
	}
	p.Price = price
	f.products[id] = p
	return nil
}

func (f *fakeStore) CreateOrder(ctx context.Context, o model.Order) (int64, error) {
	if err := f.enter("CreateOrder"); err != nil {
		return 0, err
	}
	f.nextID++
	stored := model.Order{ID: f.nextID, CashierID: o.CashierID, PaidOnDate: o.PaidOnDate}
	for _, op := range o.OrderProducts {
		stored.OrderProducts = append(stored.OrderProducts, model.OrderProduct{
			OrderID: f.nextID, ProductID: op.ProductID, Quantity: op.Quantity,
		})
	}
	f.orders[stored.ID] = stored
	return stored.ID, nil
}

func (f *fakeStore) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	if err := f.enter("GetOrder"); err != nil {
		return model.Order{}, err
	}
	o, ok := f.orders[id]
	if !ok {
		return model.Order{}, fmt.Errorf("order %d: %w", id, store.ErrNotFound)
	}
	return f.withCashier(o), nil
}

func (f *fakeStore) ListOrders(ctx context.Context, flt store.OrderFilter) ([]model.Order, error) {
	if err := f.enter("ListOrders"); err != nil {
		return nil, err
	}
	out := []model.Order{}
	for _, id := range sortedKeys(f.orders) {
		o := f.orders[id]
		if flt.PaidFrom != nil {
			if o.PaidOnDate == nil || o.PaidOnDate.Before(*flt.PaidFrom) || !o.PaidOnDate.Before(*flt.PaidTo) {
				continue
			}
		}
		out = append(out, f.withCashier(o))
	}
	return out, nil
}

func (f *fakeStore) ListOrdersByCashier(ctx context.Context, cashierID int64) ([]model.Order, error) {
	if err := f.enter("ListOrdersByCashier"); err != nil {
		return nil, err
	}
	out := []model.Order{}
	for _, id := range sortedKeys(f.orders) {
		if o := f.orders[id]; o.CashierID == cashierID {
			out = append(out, f.withCashier(o))
		}
	}
	return out, nil
}

func (f *fakeStore) ListOrderLines(ctx context.Context, orderIDs []int64) ([]model.OrderProduct, error) {
	if err := f.enter("ListOrderLines"); err != nil {
		return nil, err
	}
	out := []model.OrderProduct{}
	for _, id := range sortedKeys(f.orders) {
		if !slices.Contains(orderIDs, id) {
			continue
		}
		for _, op := range f.orders[id].OrderProducts {
			p := f.withCategory(f.products[op.ProductID])
			op.Product = &p
			out = append(out, op)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteOrder(ctx context.Context, id int64) error {
	if err := f.enter("DeleteOrder"); err != nil {
		return err
	}
	if _, ok := f.orders[id]; !ok {
		return fmt.Errorf("order %d: %w", id, store.ErrNotFound)
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.enter("Ping") }

func (f *fakeStore) Close() error { return nil }

var errDBDown = errors.New("db down")
