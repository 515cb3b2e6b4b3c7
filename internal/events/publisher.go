package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/borealis-store/borealis-backend/pkg/logger"
)

// Publisher emits domain events after the state change they describe is committed.
type Publisher interface {
	OrderPlaced(ctx context.Context, event OrderPlaced) error
}

type topicPublisher interface {
	Publish(ctx context.Context, topic string, data []byte, attributes map[string]string) (string, error)
	OrdersTopic() string
}

// PubSubPublisher publishes events to the configured Pub/Sub topics.
type PubSubPublisher struct {
	client topicPublisher
	logg   *logger.Logger
}

// NewPubSubPublisher wraps a Pub/Sub client.
func NewPubSubPublisher(client topicPublisher, logg *logger.Logger) (*PubSubPublisher, error) {
	if client == nil {
		return nil, fmt.Errorf("pubsub client is required")
	}
	if client.OrdersTopic() == "" {
		return nil, fmt.Errorf("orders topic is required")
	}
	return &PubSubPublisher{client: client, logg: logg}, nil
}

// OrderPlaced publishes an order.placed envelope keyed by the order id.
func (p *PubSubPublisher) OrderPlaced(ctx context.Context, event OrderPlaced) error {
	envelope, err := newEnvelope(EventOrderPlaced, &ActorRef{UserID: event.UserID, Role: event.ActorRole}, event.PlacedAt, event)
	if err != nil {
		return fmt.Errorf("encode order.placed data: %w", err)
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encode order.placed envelope: %w", err)
	}

	attrs := map[string]string{
		"event_id":   envelope.EventID,
		"event_type": string(envelope.EventType),
		"order_id":   event.OrderID.String(),
	}
	serverID, err := p.client.Publish(ctx, p.client.OrdersTopic(), body, attrs)
	if err != nil {
		return fmt.Errorf("publish order.placed: %w", err)
	}

	if p.logg != nil {
		logCtx := p.logg.WithFields(ctx, map[string]any{
			"event_id":   envelope.EventID,
			"event_type": string(envelope.EventType),
			"message_id": serverID,
		})
		p.logg.Info(p.logg.WithOrderID(logCtx, event.OrderID.String()), "events.published")
	}
	return nil
}

// NoopPublisher drops events; used when Pub/Sub is not configured.
type NoopPublisher struct{}

// OrderPlaced implements Publisher.
func (NoopPublisher) OrderPlaced(context.Context, OrderPlaced) error {
	return nil
}
