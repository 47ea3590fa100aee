package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront-api/internal/models"
)

const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
	TypeContactReceived    = "contact.received"
)

type Event struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	AggregateID string    `json:"aggregateId"`
	Data        any       `json:"data"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher delivers domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

func newEvent(eventType, aggregateID string, data any) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID,
		Data:        data,
		Timestamp:   time.Now().UTC(),
	}
}

func OrderPlaced(o *models.Order) Event {
	return newEvent(TypeOrderPlaced, o.ID, o)
}

type StatusChange struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

func OrderStatusChanged(orderID string, from, to models.OrderStatus) Event {
	return newEvent(TypeOrderStatusChanged, orderID, StatusChange{From: from, To: to})
}

func ContactReceived(m *models.ContactMessage) Event {
	return newEvent(TypeContactReceived, m.ID, m)
}
