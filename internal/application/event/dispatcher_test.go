package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newKiosk(t *testing.T) *asset.Kiosk {
	t.Helper()
	k, err := asset.NewKiosk(uuid.New(), "SN-001", "KX-100")
	require.NoError(t, err)
	return k
}

func TestDispatcher_PublishesAndClears(t *testing.T) {
	pub := new(mockPublisher)
	k := newKiosk(t)
	require.Len(t, k.GetDomainEvents(), 1)

	pub.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == asset.EventTypeKioskRegistered
	})).Return(nil).Once()

	NewDispatcher(pub, zap.NewNop()).Dispatch(context.Background(), k)

	pub.AssertExpectations(t)
	assert.Empty(t, k.GetDomainEvents())
}

func TestDispatcher_NoEventsSkipsPublish(t *testing.T) {
	pub := new(mockPublisher)
	k := newKiosk(t)
	k.ClearDomainEvents()

	NewDispatcher(pub, zap.NewNop()).Dispatch(context.Background(), k, nil)

	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDispatcher_PublishErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus down"))

	k := newKiosk(t)
	NewDispatcher(pub, zap.New(core)).Dispatch(context.Background(), k)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Failed to publish domain events", logs.All()[0].Message)
	assert.Empty(t, k.GetDomainEvents())
}

func TestDispatcher_NilPublisherAndNilDispatcher(t *testing.T) {
	k := newKiosk(t)
	NewDispatcher(nil, nil).Dispatch(context.Background(), k)
	assert.Empty(t, k.GetDomainEvents())

	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(context.Background(), k) })
}
