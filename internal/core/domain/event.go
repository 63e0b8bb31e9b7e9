package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventKind names a mutation side effect to be delivered out of band.
type EventKind string

const (
	EventOrderCreated   EventKind = "order.created"
	EventOrderCancelled EventKind = "order.cancelled"
	EventPaymentApplied EventKind = "payment.applied"
)

// Event is an outbox record produced alongside a mutated order. The storage
// layer persists events in the same transaction as the order save, a
// dispatcher delivers them at least once afterwards. Failures of delivery
// never fail the primary flow.
type Event struct {
	ID        string          `json:"event_id"`
	Kind      EventKind       `json:"kind"`
	OrderID   string          `json:"order_id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewEvent builds an event with a fresh identity. A payload that cannot be
// marshaled is replaced by null rather than failing the mutation.
func NewEvent(kind EventKind, orderID string, payload any) Event {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("null")
	}
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		OrderID:   orderID,
		Payload:   data,
		CreatedAt: time.Now(),
	}
}

// OutboxRecord is a persisted event pending delivery.
type OutboxRecord struct {
	ID     int64
	Event  Event
	SentAt *time.Time
}
