package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// --- inputs ---

type CreateCashierInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type CreateProductInput struct {
	ProductName string          `json:"productName"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId"`
}

type OrderLineInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CreateOrderInput struct {
	CashierID  int64            `json:"cashierId"`
	PaidOnDate *time.Time       `json:"paidOnDate,omitempty"`
	Products   []OrderLineInput `json:"products"`
}

// UnmarshalJSON reads paidOnDate with ParseTimestamp so zoneless timestamps
// are accepted as well as RFC 3339.
func (in *CreateOrderInput) UnmarshalJSON(b []byte) error {
	type plain CreateOrderInput
	aux := struct {
		*plain
		PaidOnDate *string `json:"paidOnDate"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	in.PaidOnDate = nil
	if aux.PaidOnDate != nil && strings.TrimSpace(*aux.PaidOnDate) != "" {
		t, err := ParseTimestamp(*aux.PaidOnDate)
		if err != nil {
			return fmt.Errorf("paidOnDate: %w", err)
		}
		in.PaidOnDate = &t
	}
	return nil
}

var timestampLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseTimestamp accepts RFC 3339, a zoneless timestamp or a plain date.
// Zoneless values are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a timestamp (want YYYY-MM-DD, YYYY-MM-DDTHH:MM:SS or RFC 3339)", ErrInvalidArgument, s)
}

// --- projections ---

// CashierDTO is the flat cashier view. It never carries orders, so an order
// that embeds its cashier cannot recurse.
type CashierDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type CashierDetailsDTO struct {
	ID        int64             `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	FullName  string            `json:"fullName"`
	Orders    []CashierOrderDTO `json:"orders"`
}

type CashierOrderDTO struct {
	ID            int64             `json:"id"`
	PaidOnDate    *time.Time        `json:"paidOnDate"`
	Total         decimal.Decimal   `json:"total"`
	OrderProducts []OrderProductDTO `json:"orderProducts"`
}

type CategoryDTO struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"categoryName"`
}

type ProductDTO struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"productName"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId"`
	Category    *CategoryDTO    `json:"category,omitempty"`
}

type OrderProductDTO struct {
	ProductID int64      `json:"productId"`
	Quantity  int        `json:"quantity"`
	Product   ProductDTO `json:"product"`
}

type OrderDetailsDTO struct {
	ID            int64             `json:"id"`
	PaidOnDate    *time.Time        `json:"paidOnDate"`
	Paid          bool              `json:"paid"`
	Total         decimal.Decimal   `json:"total"`
	Cashier       CashierDTO        `json:"cashier"`
	OrderProducts []OrderProductDTO `json:"orderProducts"`
}
