package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"cornerstore/model"
	"cornerstore/store"
)

// GetOrder returns the order projection with the total computed from the
// current product prices.
func (s *Service) GetOrder(ctx context.Context, id int64) (OrderDetailsDTO, error) {
	o, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return OrderDetailsDTO{}, lookupErr(err, "order", id)
	}
	lines, err := s.store.ListOrderLines(ctx, []int64{id})
	if err != nil {
		return OrderDetailsDTO{}, fmt.Errorf("list lines of order %d: %w", id, err)
	}
	o.OrderProducts = lines
	return toOrderDetails(o), nil
}

// ListOrders returns every order, or with paidOn set only the orders paid on
// that calendar day in paidOn's location. Unpaid orders never match a day.
func (s *Service) ListOrders(ctx context.Context, paidOn *time.Time) ([]OrderDetailsDTO, error) {
	var f store.OrderFilter
	if paidOn != nil {
		from, to := dayBounds(*paidOn)
		f = store.OrderFilter{PaidFrom: &from, PaidTo: &to}
	}
	orders, err := s.store.ListOrders(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	lines, err := s.store.ListOrderLines(ctx, orderIDs(orders))
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	attachLines(orders, lines)

	out := make([]OrderDetailsDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDetails(o))
	}
	return out, nil
}

// dayBounds returns [00:00, next 00:00) of t's calendar day.
func dayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}

// CreateOrder validates the whole aggregate before anything is written:
// the cashier, the lines, then every product in one batch lookup. The order
// and its lines are then stored in one transaction.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderDetailsDTO, error) {
	cashier, err := s.store.GetCashier(ctx, in.CashierID)
	if err != nil {
		return OrderDetailsDTO{}, lookupErr(err, "cashier", in.CashierID)
	}
	if err := validateLines(in.Products); err != nil {
		return OrderDetailsDTO{}, err
	}

	ids := make([]int64, 0, len(in.Products))
	for _, l := range in.Products {
		ids = append(ids, l.ProductID)
	}
	found, err := s.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		return OrderDetailsDTO{}, fmt.Errorf("get products: %w", err)
	}
	products := make(map[int64]model.Product, len(found))
	for _, p := range found {
		products[p.ID] = p
	}
	var missing []string
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			missing = append(missing, strconv.FormatInt(id, 10))
		}
	}
	if len(missing) > 0 {
		return OrderDetailsDTO{}, fmt.Errorf("%w: product IDs %s do not exist", ErrInvalidReference, strings.Join(missing, ", "))
	}

	order := model.Order{
		CashierID:     cashier.ID,
		PaidOnDate:    in.PaidOnDate,
		Cashier:       &cashier,
		OrderProducts: make([]model.OrderProduct, 0, len(in.Products)),
	}
	for _, l := range in.Products {
		p := products[l.ProductID]
		order.OrderProducts = append(order.OrderProducts, model.OrderProduct{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Product:   &p,
		})
	}

	id, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		return OrderDetailsDTO{}, fmt.Errorf("create order: %w", err)
	}
	order.ID = id
	for i := range order.OrderProducts {
		order.OrderProducts[i].OrderID = id
	}
	return toOrderDetails(order), nil
}

// maxQuantity is the largest value order_products.quantity INTEGER holds.
const maxQuantity = math.MaxInt32

// validateLines rejects an empty order, quantities outside [1, maxQuantity]
// and the same product listed twice (the line key is order id + product id).
func validateLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: an order needs at least one product", ErrInvalidArgument)
	}
	seen := make([]int64, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 || l.Quantity > maxQuantity {
			return fmt.Errorf("%w: quantity for product %d must be between 1 and %d", ErrInvalidArgument, l.ProductID, maxQuantity)
		}
		if slices.Contains(seen, l.ProductID) {
			return fmt.Errorf("%w: product %d is listed more than once", ErrInvalidArgument, l.ProductID)
		}
		seen = append(seen, l.ProductID)
	}
	return nil
}

// DeleteOrder removes the order together with its line items.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	return nil
}
