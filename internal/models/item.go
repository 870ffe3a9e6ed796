package models

import "github.com/shopspring/decimal"

// Item is shared reference data. Carts and orders hold copies of it, they
// never own it.
type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}
