package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func TestKafkaForwarder_ForwardsMatchingEvents(t *testing.T) {
	writer := new(mockWriter)
	fwd := NewKafkaForwarder(writer, "", zap.NewNop())

	event := newTestEvent("kiosk.registered", uuid.New())
	var written []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	require.NoError(t, fwd.Handle(context.Background(), event))
	writer.AssertExpectations(t)

	require.Len(t, written, 1)
	assert.Equal(t, event.AggregateID().String(), string(written[0].Key))

	var env ForwardedEvent
	require.NoError(t, json.Unmarshal(written[0].Value, &env))
	assert.Equal(t, "kiosk.registered", env.EventType)
	assert.Equal(t, event.TenantID().String(), env.TenantID)
	assert.Contains(t, string(env.Payload), "test data")
}

func TestKafkaForwarder_SkipsOtherFamilies(t *testing.T) {
	writer := new(mockWriter)
	fwd := NewKafkaForwarder(writer, "events", zap.NewNop())

	require.NoError(t, fwd.Handle(context.Background(), newTestEvent("partner.created", uuid.New())))
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	assert.True(t, fwd.Forwards("order.created"))
	assert.True(t, fwd.Forwards("lead.converted"))
	assert.False(t, fwd.Forwards("organization.fc.created"))
}

func TestKafkaForwarder_WriteError(t *testing.T) {
	writer := new(mockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	fwd := NewKafkaForwarder(writer, "events", nil)

	err := fwd.Handle(context.Background(), newTestEvent("order.created", uuid.New()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestKafkaForwarder_ErrorDoesNotBreakBus(t *testing.T) {
	writer := new(mockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(NewKafkaForwarder(writer, "events", zap.NewNop()))
	handler := newTestHandler("lead.created")
	bus.Subscribe(handler, "lead.created")

	err := bus.Publish(context.Background(), newTestEvent("lead.created", uuid.New()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, handler.getHandled(), 1)
}

func TestKafkaForwarder_SubscribesByFamily(t *testing.T) {
	writer := new(mockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)
	fwd := NewKafkaForwarder(writer, "events", zap.NewNop())
	assert.Equal(t, []string{"kiosk.*", "order.*", "lead.*"}, fwd.EventTypes())

	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(fwd)
	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("kiosk.leased", uuid.New()),
		newTestEvent("partner.created", uuid.New()),
	))
	writer.AssertNumberOfCalls(t, "WriteMessages", 1)
}

func TestNewKafkaWriter(t *testing.T) {
	_, err := NewKafkaWriter(config.KafkaConfig{})
	require.Error(t, err)

	_, err = NewKafkaWriter(config.KafkaConfig{Brokers: []string{"localhost:9092"}})
	require.Error(t, err)

	w, err := NewKafkaWriter(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "kiosk-events"})
	require.NoError(t, err)
	assert.Equal(t, "kiosk-events", w.Topic)
}
