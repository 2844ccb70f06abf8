package events

import (
	"context"
	"time"

	"moffatbay/internal/domain"
)

// Sink fans lifecycle events out to the desk feed hub and, when a broker is
// configured, RabbitMQ. Either target may be nil.
type Sink struct {
	hub       *Hub
	publisher *Publisher
}

func NewSink(hub *Hub, publisher *Publisher) *Sink {
	return &Sink{hub: hub, publisher: publisher}
}

func (s *Sink) ReservationEvent(eventType string, r *domain.Reservation) {
	event := newEvent(eventType, r)
	if s.hub != nil {
		s.hub.Broadcast(event)
	}
	if s.publisher != nil {
		// Broker delivery is best effort and must not slow the request.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.publisher.Publish(ctx, event)
		}()
	}
}
