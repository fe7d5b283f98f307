package slotevents

import (
	"availability-service/internal/app/contracts"
	"availability-service/internal/app/models"
	"availability-service/internal/pkg/constvars"
	"availability-service/internal/pkg/exceptions"
	"availability-service/internal/pkg/utils"
	"context"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPChannel is the subset of *amqp091.Channel the publisher needs.
type AMQPChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type slotEventPublisher struct {
	Channel AMQPChannel
	Queue   string
	Log     *zap.Logger
}

func NewSlotEventPublisher(rabbitMQConnection *amqp091.Connection, logger *zap.Logger, queue string) (contracts.SlotEventPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}
	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}
	return NewSlotEventPublisherWithChannel(channel, logger, queue), nil
}

func NewSlotEventPublisherWithChannel(channel AMQPChannel, logger *zap.Logger, queue string) contracts.SlotEventPublisher {
	return &slotEventPublisher{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}
}

func (s *slotEventPublisher) PublishSlotChanged(ctx context.Context, event *models.SlotChangedEvent) error {
	requestID := utils.RequestIDFromContext(ctx)

	s.Log.Info("slotEventPublisher.PublishSlotChanged called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingToggleActionKey, event.Action),
		zap.String(constvars.LoggingSlotIDKey, event.SlotID),
	)

	body, err := json.Marshal(event)
	if err != nil {
		s.Log.Error("slotEventPublisher.PublishSlotChanged error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     constvars.SlotEventMessageType,
		"requeue_strategy": constvars.SlotEventRequeueHeader,
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		Headers:      headers,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Log.Error("slotEventPublisher.PublishSlotChanged error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	s.Log.Info("slotEventPublisher.PublishSlotChanged succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)

	return nil
}
