package session

import "sync/atomic"

// AdminSeat is the single-slot administrator election. Exactly one of any
// number of concurrent TryAcquire calls wins. The seat is never released,
// not even when the administrator disconnects: once taken it stays taken
// for the lifetime of the process.
type AdminSeat struct {
	taken atomic.Bool
}

// TryAcquire claims the seat. It returns true for exactly one caller.
func (s *AdminSeat) TryAcquire() bool {
	return s.taken.CompareAndSwap(false, true)
}

func (s *AdminSeat) Occupied() bool {
	return s.taken.Load()
}
