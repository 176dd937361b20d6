package domain

import "github.com/shopspring/decimal"

// Product is an immutable catalog entry.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"` // Unit price, currency units, never negative
	Image string          `json:"image"` // Image URI reference
}
