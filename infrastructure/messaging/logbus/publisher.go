// Package logbus publishes domain events in process: every event is logged
// and handed to the subscribers of its type.
package logbus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"archibridge/application/ports"
	"archibridge/domain/events"
)

// AllEvents subscribes a handler to every event type
const AllEvents = "*"

var _ ports.EventPublisher = (*Publisher)(nil)

// Handler reacts to a published event
type Handler func(ctx context.Context, event events.DomainEvent) error

// Publisher implements ports.EventPublisher
type Publisher struct {
	logger   *zap.Logger
	handlers map[string][]Handler
	mu       sync.RWMutex
}

// NewPublisher creates a publisher that logs through logger
func NewPublisher(logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		logger:   logger,
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers handler for eventType, or for every type with AllEvents
func (p *Publisher) Subscribe(eventType string, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.handlers[eventType] = append(p.handlers[eventType], handler)
}

// Publish logs each event and runs its subscribers in registration order.
// Every subscriber runs; their errors are joined.
func (p *Publisher) Publish(ctx context.Context, evs ...events.DomainEvent) error {
	var errs []error
	for _, e := range evs {
		p.logger.Info("Domain event",
			zap.String("event_type", e.GetEventType()),
			zap.String("model_id", e.GetAggregateID()),
			zap.Time("timestamp", e.GetTimestamp()),
			zap.Any("event", e),
		)

		for i, h := range p.subscribers(e.GetEventType()) {
			if err := h(ctx, e); err != nil {
				errs = append(errs, fmt.Errorf("handler %d for %s failed: %w", i, e.GetEventType(), err))
			}
		}
	}
	return errors.Join(errs...)
}

func (p *Publisher) subscribers(eventType string) []Handler {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Handler, 0, len(p.handlers[eventType])+len(p.handlers[AllEvents]))
	out = append(out, p.handlers[eventType]...)
	return append(out, p.handlers[AllEvents]...)
}
