package domain

import "fmt"

// Cart is the per-session staging area for an order. It is owned by a single
// session and only ever touched from that session's sequential command
// stream, so it carries no lock of its own.
type Cart struct {
	items map[string]int
}

func NewCart() *Cart {
	return &Cart{items: make(map[string]int)}
}

// AddItem increments the requested quantity for a product, inserting the
// entry if it is not in the cart yet.
func (c *Cart) AddItem(productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidCommand)
	}
	c.items[productID] += quantity
	return nil
}

// Snapshot returns a copy of the cart contents, safe to keep after the cart
// is cleared.
func (c *Cart) Snapshot() map[string]int {
	out := make(map[string]int, len(c.items))
	for id, qty := range c.items {
		out[id] = qty
	}
	return out
}

func (c *Cart) Clear() {
	clear(c.items)
}

func (c *Cart) Len() int {
	return len(c.items)
}
