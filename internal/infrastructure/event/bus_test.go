package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string, tenantID uuid.UUID) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Kiosk", uuid.New(), tenantID),
		Data:            "test data",
	}
}

type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) setError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

type panicHandler struct{}

func (panicHandler) Handle(context.Context, shared.DomainEvent) error { panic("boom") }
func (panicHandler) EventTypes() []string                             { return []string{"kiosk.*"} }

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	leased := newTestHandler()
	family := newTestHandler()
	bus.Subscribe(leased, "kiosk.leased")
	bus.Subscribe(family, "kiosk.*")

	tenantID := uuid.New()
	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("kiosk.registered", tenantID),
		newTestEvent("kiosk.leased", tenantID),
		newTestEvent("order.created", tenantID),
	))

	require.Len(t, leased.getHandled(), 1)
	assert.Equal(t, "kiosk.leased", leased.getHandled()[0].EventType())
	assert.Len(t, family.getHandled(), 2)
}

func TestInMemoryEventBus_SubscribeUsesHandlerTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := newTestHandler("lead.converted")
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("lead.created", uuid.New()),
		newTestEvent("lead.converted", uuid.New()),
	))
	assert.Len(t, h.getHandled(), 1)
}

func TestInMemoryEventBus_FailuresAreJoined(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := newTestHandler()
	failing.setError(errors.New("slack unreachable"))
	healthy := newTestHandler()
	bus.Subscribe(failing, "kiosk.leased")
	bus.Subscribe(panicHandler{})
	bus.Subscribe(healthy, Wildcard)

	tenantID := uuid.New()
	err := bus.Publish(context.Background(), newTestEvent("kiosk.leased", tenantID))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "slack unreachable")
	assert.Contains(t, err.Error(), "handler panicked: boom")
	assert.Len(t, healthy.getHandled(), 1, "other handlers still receive the event")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, tenantID.String(), logs.All()[0].ContextMap()["tenant_id"])
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := newTestHandler()
	bus.Subscribe(h, "kiosk.*", "order.created")
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("kiosk.sold", uuid.New()),
		newTestEvent("order.created", uuid.New()),
	))
	assert.Empty(t, h.getHandled())
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	require.NoError(t, bus.Stop(context.Background()))
}
