package domain

import "sync/atomic"

// OrderSequence hands out order ids. Ids are unique and strictly increasing
// across every session on the server.
type OrderSequence struct {
	last atomic.Int64
}

func (s *OrderSequence) Next() int64 {
	return s.last.Add(1)
}
