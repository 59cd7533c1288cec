// Package session tracks per-connection server state: the registry of
// sessions and the administrator seat. Sessions are created on first contact
// and kept for the lifetime of the process.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/cloud-wave-best-zizon/stock-service/internal/domain"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Session is the state attached to one client connection. Cart and the
// order list exist for customers only and are touched exclusively by the
// owning connection's command stream.
type Session struct {
	ID   string
	Role Role
	Cart *domain.Cart

	orders []*domain.Order
}

func (s *Session) AppendOrder(o *domain.Order) {
	s.orders = append(s.orders, o)
}

// Orders returns the session's orders in placement order.
func (s *Session) Orders() []*domain.Order {
	return s.orders
}

// NewSessionID generates an id for a new connection. Ids are never reused.
func NewSessionID() string {
	return uuid.NewString()
}

// Registry maps session id to session state.
type Registry struct {
	sessions sync.Map // string -> *Session
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Attach creates the session for an id if it does not exist yet and returns
// it. Insertion is insert-if-absent, so duplicate initialization races for
// the same id resolve to a single session. Only customers get a cart.
func (r *Registry) Attach(id string, role Role) *Session {
	s := &Session{ID: id, Role: role}
	if role == RoleCustomer {
		s.Cart = domain.NewCart()
	}
	actual, _ := r.sessions.LoadOrStore(id, s)
	return actual.(*Session)
}

func (r *Registry) Get(id string) (*Session, bool) {
	v, ok := r.sessions.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}
