package storefront

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyCart is returned when checking out with nothing in the cart.
var ErrEmptyCart = errors.New("el carrito está vacío")

// Receipt summarizes a completed purchase.
type Receipt struct {
	Items       []CartItem
	TotalItems  int
	TotalPrice  float64
	ConfirmedAt time.Time
}

// Summary is the confirmation line shown before buying.
func (r *Receipt) Summary() string {
	return fmt.Sprintf("Total a pagar: $%.2f", r.TotalPrice)
}

// Checkout records the cart contents in a receipt and clears the cart.
// No payment is taken.
func Checkout(cart *Cart, now func() time.Time) (*Receipt, error) {
	if now == nil {
		now = time.Now
	}

	items := cart.takeAll()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	r := &Receipt{Items: items, ConfirmedAt: now()}
	for _, it := range items {
		r.TotalItems += it.Quantity
		r.TotalPrice += it.Game.Price * float64(it.Quantity)
	}
	return r, nil
}
