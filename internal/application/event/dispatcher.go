// Package event hands the pending domain events of saved aggregates to the
// event bus.
package event

import (
	"context"

	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Dispatcher publishes the events an aggregate queued while it was being
// changed. Dispatch runs after the aggregate is persisted; a publish failure
// is logged and does not undo the write.
type Dispatcher struct {
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher. A nil publisher drops every event.
func NewDispatcher(publisher shared.EventPublisher, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{publisher: publisher, logger: logger}
}

// Dispatch publishes and clears the pending events of each aggregate.
func (d *Dispatcher) Dispatch(ctx context.Context, aggregates ...shared.AggregateRoot) {
	if d == nil {
		return
	}
	var events []shared.DomainEvent
	for _, agg := range aggregates {
		if agg == nil {
			continue
		}
		events = append(events, agg.GetDomainEvents()...)
		agg.ClearDomainEvents()
	}
	if len(events) == 0 || d.publisher == nil {
		return
	}
	if err := d.publisher.Publish(ctx, events...); err != nil {
		logger.Enrich(ctx, d.logger).Warn("Failed to publish domain events",
			zap.Int("count", len(events)),
			zap.String("first_event_type", events[0].EventType()),
			zap.Error(err),
		)
	}
}
