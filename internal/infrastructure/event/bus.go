package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/kioskcrm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus delivers domain events synchronously to the handlers
// subscribed in its registry. A failing or panicking handler does not stop
// delivery to the others; the failures are returned joined.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
}

func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers each event in order.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	var errs []error
	for _, e := range events {
		for _, h := range b.registry.GetHandlers(e.EventType()) {
			if err := b.deliver(ctx, h, e); err != nil {
				b.logger.Error("Event handler failed",
					zap.String("event_type", e.EventType()),
					zap.String("event_id", e.EventID().String()),
					zap.String("tenant_id", e.TenantID().String()),
					zap.String("aggregate", e.AggregateType()+"/"+e.AggregateID().String()),
					zap.Error(err))
				errs = append(errs, fmt.Errorf("%s: %w", e.EventType(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers handler for the given patterns, or for the patterns
// the handler reports itself when none are given.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, patterns ...string) {
	if len(patterns) == 0 {
		patterns = handler.EventTypes()
	}
	b.registry.Register(handler, patterns...)
	b.logger.Debug("Event handler subscribed", zap.Strings("patterns", patterns))
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start logs the subscriptions; delivery needs no background workers.
func (b *InMemoryEventBus) Start(_ context.Context) error {
	b.logger.Info("Event bus started", zap.Int("handlers", b.registry.Len()))
	return nil
}

func (b *InMemoryEventBus) Stop(_ context.Context) error {
	b.logger.Info("Event bus stopped")
	return nil
}

func (b *InMemoryEventBus) deliver(ctx context.Context, h shared.EventHandler, e shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, e)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
