package model

import "github.com/shopspring/decimal"

type Category struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"categoryName"`
}

// Product belongs to exactly one category. Category is only set when the
// row was read together with its category.
type Product struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"productName"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId"`
	Category    *Category       `json:"category,omitempty"`
}
