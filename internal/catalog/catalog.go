// Package catalog holds the shared product catalog. The map itself is
// guarded by a read-write lock; each entry's mutable fields are guarded by
// the entry's own lock, so admin mutation and order placement on the same
// product contend only on that product.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/cloud-wave-best-zizon/stock-service/internal/domain"
)

type Catalog struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func New() *Catalog {
	return &Catalog{products: make(map[string]*domain.Product)}
}

// Add inserts or overwrites an entry unconditionally.
func (c *Catalog) Add(id, name string, quantity int, price decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[id] = domain.NewProduct(id, name, quantity, price)
}

// Update overwrites quantity and price of an existing entry in one step.
func (c *Catalog) Update(id string, quantity int, price decimal.Decimal) error {
	c.mu.RLock()
	p, ok := c.products[id]
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	p.Update(quantity, price)
	return nil
}

func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	delete(c.products, id)
	return nil
}

func (c *Catalog) Get(id string) (*domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	return p, ok
}

// List returns the current entries ordered by id. The listing is weakly
// consistent: entries mutated concurrently may render either state.
func (c *Catalog) List() []*domain.Product {
	c.mu.RLock()
	out := make([]*domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// DecrementForOrder reserves amount units of a product for an order and
// returns the unit price it was sold at. The availability check and the
// subtraction are atomic per product.
func (c *Catalog) DecrementForOrder(id string, amount int) (decimal.Decimal, error) {
	c.mu.RLock()
	p, ok := c.products[id]
	c.mu.RUnlock()
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	price, ok := p.Decrement(amount)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: product %s", domain.ErrInsufficientStock, id)
	}
	return price, nil
}
