package slotevents

import (
	"availability-service/internal/app/models"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAMQPChannel struct {
	mock.Mock
}

func (m *MockAMQPChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func testEvent() *models.SlotChangedEvent {
	start := time.Date(2024, time.May, 15, 9, 0, 0, 0, time.UTC)
	return &models.SlotChangedEvent{
		ID:             "evt-1",
		PractitionerID: "prac-1",
		Action:         "created",
		SlotID:         "slot-1",
		StartTime:      start,
		EndTime:        start.Add(15 * time.Minute),
		OccurredAt:     start.Add(-time.Hour),
	}
}

func TestSlotEventPublisher_PublishSlotChanged(t *testing.T) {
	ctx := context.Background()

	t.Run("Publishes a persistent JSON message to the queue", func(t *testing.T) {
		channel := new(MockAMQPChannel)
		channel.On("PublishWithContext", ctx, "", "slot-events", false, false, mock.Anything).Return(nil).Once()

		err := NewSlotEventPublisherWithChannel(channel, zap.NewNop(), "slot-events").PublishSlotChanged(ctx, testEvent())
		require.NoError(t, err)

		msg := channel.Calls[0].Arguments.Get(5).(amqp091.Publishing)
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, "evt-1", msg.MessageId)
		assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
		assert.Equal(t, "JSON", msg.Headers["message_type"])

		var body models.SlotChangedEvent
		require.NoError(t, json.Unmarshal(msg.Body, &body))
		assert.Equal(t, "slot-1", body.SlotID)
		assert.Equal(t, "created", body.Action)
	})

	t.Run("Broker failure", func(t *testing.T) {
		channel := new(MockAMQPChannel)
		channel.On("PublishWithContext", ctx, "", "slot-events", false, false, mock.Anything).
			Return(errors.New("channel/connection is not open")).Once()

		err := NewSlotEventPublisherWithChannel(channel, zap.NewNop(), "slot-events").PublishSlotChanged(ctx, testEvent())

		assert.Error(t, err)
	})
}
