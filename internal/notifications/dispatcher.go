package notifications

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"direct-chat-service/internal/observability"
	"direct-chat-service/internal/rabbitmq"
)

// Push is the payload handed to the delivery pipeline.
type Push struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Envelope wraps a push for the notifications exchange.
type Envelope struct {
	SchemaVersion int       `json:"schema_version"`
	EventType     string    `json:"event_type"`
	OccurredAt    string    `json:"occurred_at"`
	Service       string    `json:"service"`
	Environment   string    `json:"environment"`
	UserID        uuid.UUID `json:"user_id"`
	Push          Push      `json:"push"`
}

// Dispatcher sends pushes fire-and-forget: every failure is logged and
// counted, never returned, so a broken delivery can not abort the chat
// operation that triggered it.
type Dispatcher struct {
	publisher   rabbitmq.Publisher
	routingKey  string
	service     string
	environment string
}

// NewDispatcher builds a Dispatcher.
func NewDispatcher(publisher rabbitmq.Publisher, routingKey, service, environment string) *Dispatcher {
	return &Dispatcher{
		publisher:   publisher,
		routingKey:  routingKey,
		service:     service,
		environment: environment,
	}
}

// SendToUser publishes one push for one user.
func (d *Dispatcher) SendToUser(ctx context.Context, userID uuid.UUID, push Push) {
	if d == nil || d.publisher == nil {
		return
	}

	envelope := Envelope{
		SchemaVersion: 1,
		EventType:     "push_notification",
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       d.service,
		Environment:   d.environment,
		UserID:        userID,
		Push:          push,
	}

	if err := d.publisher.Publish(ctx, d.routingKey, envelope); err != nil {
		observability.IncPushPublishError()
		log.Printf("push publish failed user_id=%s title=%q: %v", userID, push.Title, err)
	}
}
