package notify

import (
	"context"

	"github.com/google/uuid"
)

// EventType identifies a ledger lifecycle event
type EventType string

const (
	EventOrderCreated      EventType = "order_created"
	EventPaymentReceived   EventType = "payment_received"
	EventStatusChanged     EventType = "status_changed"
	EventDeliveryScheduled EventType = "delivery_scheduled"
	EventTaskAssigned      EventType = "task_assigned"
)

// Event is a lifecycle notification emitted by the ledger core after a
// successful commit. The core never owns message storage or delivery.
type Event struct {
	Type            EventType
	TargetUserID    uuid.UUID
	Message         string
	RelatedEntityID uuid.UUID
}

// Dispatcher receives lifecycle events. Enqueue is fire-and-forget: it must
// never block the caller or fail the operation that emitted the event.
type Dispatcher interface {
	Enqueue(ctx context.Context, event Event)
}
