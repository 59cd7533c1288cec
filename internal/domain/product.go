package domain

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Quantity and price are the mutable fields and
// always change together under the entry lock, so a reader never observes a
// quantity from one update paired with a price from another.
type Product struct {
	id   string
	name string

	mu       sync.Mutex
	quantity int
	price    decimal.Decimal
}

func NewProduct(id, name string, quantity int, price decimal.Decimal) *Product {
	return &Product{id: id, name: name, quantity: quantity, price: price}
}

func (p *Product) ID() string { return p.id }

func (p *Product) Name() string { return p.name }

func (p *Product) Quantity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.quantity
}

func (p *Product) Price() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.price
}

// Update overwrites quantity and price as one atomic step.
func (p *Product) Update(quantity int, price decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quantity = quantity
	p.price = price
}

// Decrement subtracts amount from the stock if enough is available and
// returns the unit price at the instant of the decrement. The check and the
// subtraction happen under the same lock.
func (p *Product) Decrement(amount int) (decimal.Decimal, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.quantity < amount {
		return decimal.Zero, false
	}
	p.quantity -= amount
	return p.price, true
}

func (p *Product) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("%s | %s | Quantity: %d | Price: %s", p.id, p.name, p.quantity, p.price)
}
