package events

import "time"

const (
	TypeOrderCreated   = "order.created"
	TypeOrderShipped   = "order.shipped"
	TypeOrderDelivered = "order.delivered"
)

type OrderEvent struct {
	EventID   string         `json:"event_id"`
	Type      string         `json:"type"`
	OrderID   int64          `json:"order_id"`
	SessionID string         `json:"session_id"`
	Items     map[string]int `json:"items,omitempty"`
	Total     string         `json:"total,omitempty"`
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
}
