package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names a published domain event.
type EventType string

const (
	// EventOrderPlaced is emitted once an order has been committed.
	EventOrderPlaced EventType = "order.placed"

	envelopeVersion = 1
)

// ActorRef identifies who produced the event.
type ActorRef struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role,omitempty"`
}

// Envelope is the stable message body published for every event.
type Envelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	EventType  EventType       `json:"eventType"`
	OccurredAt time.Time       `json:"occurredAt"`
	Actor      *ActorRef       `json:"actor,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// OrderPlacedLine is one purchased line in an order.placed event.
type OrderPlacedLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// OrderPlaced is the data carried by an order.placed event.
type OrderPlaced struct {
	OrderID    uuid.UUID         `json:"orderId"`
	UserID     uuid.UUID         `json:"userId"`
	TotalPrice string            `json:"totalPrice"`
	ItemCount  int               `json:"itemCount"`
	Lines      []OrderPlacedLine `json:"lines"`
	PlacedAt   time.Time         `json:"placedAt"`

	// ActorRole is carried on the envelope actor rather than in the payload.
	ActorRole string `json:"-"`
}

func newEnvelope(eventType EventType, actor *ActorRef, occurredAt time.Time, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Version:    envelopeVersion,
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: occurredAt.UTC(),
		Actor:      actor,
		Data:       raw,
	}, nil
}
