package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is handled by one cashier and owns its line items.
// A nil PaidOnDate means the order is still open.
type Order struct {
	ID            int64          `json:"id"`
	CashierID     int64          `json:"cashierId"`
	PaidOnDate    *time.Time     `json:"paidOnDate"`
	Cashier       *Cashier       `json:"cashier,omitempty"`
	OrderProducts []OrderProduct `json:"orderProducts"`
}

// OrderProduct is one line item. (OrderID, ProductID) is unique.
type OrderProduct struct {
	OrderID   int64    `json:"orderId"`
	ProductID int64    `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// Paid reports whether the order has a paid-on date.
func (o Order) Paid() bool {
	return o.PaidOnDate != nil
}

// Total sums quantity × current product price over the loaded line items.
// It is never stored: a price change shows up in every order that references
// the product, including orders paid in the past. Lines without a loaded
// product contribute nothing.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, op := range o.OrderProducts {
		total = total.Add(op.Subtotal())
	}
	return total
}

// Subtotal is quantity × price for a single line.
func (op OrderProduct) Subtotal() decimal.Decimal {
	if op.Product == nil {
		return decimal.Zero
	}
	return op.Product.Price.Mul(decimal.NewFromInt(int64(op.Quantity)))
}
