package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewCart(userID int64) *Cart {
	return &Cart{
		UserID: userID,
		Items:  []Item{},
		Total:  decimal.Zero,
	}
}

// AddItem appends quantity copies of item and recomputes the total.
func (c *Cart) AddItem(item Item, quantity int) {
	for range quantity {
		c.Items = append(c.Items, item)
	}

	c.RecalculateTotal()
}

// RemoveItem drops up to quantity copies of the item, earliest first. Asking
// for more copies than the cart holds removes every copy.
func (c *Cart) RemoveItem(item Item, quantity int) {
	if quantity <= 0 {
		c.RecalculateTotal()
		return
	}

	kept := make([]Item, 0, len(c.Items))
	removed := 0

	for _, existing := range c.Items {
		if existing.ID == item.ID && removed < quantity {
			removed++
			continue
		}
		kept = append(kept, existing)
	}

	c.Items = kept
	c.RecalculateTotal()
}

func (c *Cart) RecalculateTotal() {
	total := decimal.Zero

	for _, item := range c.Items {
		total = total.Add(item.Price)
	}

	c.Total = total
}

// MaxCartQuantity caps the copies a single cart request may add or remove.
const MaxCartQuantity = 100

// carts
type ModifyCartRequest struct {
	Username string `json:"username" validate:"required"`
	ItemID   int64  `json:"itemId" validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"gte=0,max=100"`
}
