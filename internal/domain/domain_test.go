package domain

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItemAccumulates(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	require.NoError(t, cart.AddItem("P001", 3))
	require.NoError(t, cart.AddItem("P001", 2))
	require.NoError(t, cart.AddItem("P002", 1))

	assert.Equal(t, map[string]int{"P001": 5, "P002": 1}, cart.Snapshot())
}

func TestCartAddItemRejectsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	assert.ErrorIs(t, cart.AddItem("P001", 0), ErrInvalidCommand)
	assert.ErrorIs(t, cart.AddItem("P001", -2), ErrInvalidCommand)
	assert.Equal(t, 0, cart.Len())
}

func TestCartSnapshotIsIndependentCopy(t *testing.T) {
	t.Parallel()

	cart := NewCart()
	require.NoError(t, cart.AddItem("P001", 3))

	snapshot := cart.Snapshot()
	cart.Clear()

	assert.Equal(t, map[string]int{"P001": 3}, snapshot)
	assert.Equal(t, 0, cart.Len())
}

func TestOrderFreezesItemsAtCreation(t *testing.T) {
	t.Parallel()

	items := map[string]int{"P001": 3}
	order := NewOrder(1, items, decimal.NewFromInt(2100))

	items["P001"] = 99
	assert.Equal(t, map[string]int{"P001": 3}, order.Items())

	got := order.Items()
	got["P001"] = 99
	assert.Equal(t, map[string]int{"P001": 3}, order.Items())
}

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()

	order := NewOrder(1, nil, decimal.Zero)
	assert.Equal(t, OrderStatusPreparing, order.Status())

	order.SetStatus(OrderStatusShipped)
	assert.Equal(t, OrderStatusShipped, order.Status())

	order.SetStatus(OrderStatusDelivered)
	assert.Equal(t, OrderStatusDelivered, order.Status())
}

func TestProductUpdateChangesBothFields(t *testing.T) {
	t.Parallel()

	p := NewProduct("P001", "Laptop", 10, decimal.NewFromInt(700))
	p.Update(7, decimal.NewFromInt(650))

	assert.Equal(t, 7, p.Quantity())
	assert.True(t, p.Price().Equal(decimal.NewFromInt(650)))
}

func TestProductDecrement(t *testing.T) {
	t.Parallel()

	p := NewProduct("P001", "Laptop", 10, decimal.NewFromInt(700))

	price, ok := p.Decrement(3)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, 7, p.Quantity())

	_, ok = p.Decrement(8)
	assert.False(t, ok)
	assert.Equal(t, 7, p.Quantity())
}

func TestOrderSequenceStrictlyIncreasing(t *testing.T) {
	t.Parallel()

	var seq OrderSequence
	const workers = 16
	const perWorker = 100

	ids := make(chan int64, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids <- seq.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate order id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
}
