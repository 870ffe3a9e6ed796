package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserOrder is an immutable snapshot of a cart taken at submission time.
type UserOrder struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewUserOrderFromCart copies the cart's items and total. Later edits to
// the cart do not reach the order.
func NewUserOrderFromCart(cart *Cart) *UserOrder {
	items := make([]Item, len(cart.Items))
	copy(items, cart.Items)

	return &UserOrder{
		UserID: cart.UserID,
		Items:  items,
		Total:  cart.Total,
	}
}
