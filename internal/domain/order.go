package domain

import (
	"sync/atomic"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// Order is an immutable snapshot of a cart at placement time. Only the
// status moves after creation: the fulfillment goroutine writes it while the
// owning session reads it, so it lives behind an atomic.
type Order struct {
	id    int64
	items map[string]int
	total decimal.Decimal

	status atomic.Value // OrderStatus
}

func NewOrder(id int64, items map[string]int, total decimal.Decimal) *Order {
	copied := make(map[string]int, len(items))
	for productID, qty := range items {
		copied[productID] = qty
	}
	o := &Order{id: id, items: copied, total: total}
	o.status.Store(OrderStatusPreparing)
	return o
}

func (o *Order) ID() int64 { return o.id }

// Items returns a copy; the order's own snapshot never changes.
func (o *Order) Items() map[string]int {
	out := make(map[string]int, len(o.items))
	for productID, qty := range o.items {
		out[productID] = qty
	}
	return out
}

func (o *Order) Total() decimal.Decimal { return o.total }

func (o *Order) Status() OrderStatus {
	return o.status.Load().(OrderStatus)
}

func (o *Order) SetStatus(s OrderStatus) {
	o.status.Store(s)
}
