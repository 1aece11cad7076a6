package service

import (
	"context"

	"notestack-be/internal/pkg/logger"
	"notestack-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventForwarder hands events to the external bus (NATS).
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

// EventHandler processes an event inside this process.
type EventHandler func(ctx context.Context, event events.Event) error

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	forwarder  EventForwarder
	local      EventHandler
	logger     logger.ILogger
}

// NewConsumerService drains the in-process topic. Events go to forwarder when
// one is configured and to local otherwise, or when forwarding fails.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	forwarder EventForwarder,
	local EventHandler,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		forwarder:  forwarder,
		local:      local,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Every message is acked: a retry cannot fix a bad payload, and delivery
	// failures further down are logged instead.
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to decode event", map[string]interface{}{"error": err.Error()})
		return
	}

	cs.logger.Info("ConsumerService", "Domain event", map[string]interface{}{
		"type": event.EventType(),
		"data": event.Payload(),
	})

	if cs.forwarder != nil {
		err := cs.forwarder.Publish(ctx, event)
		if err == nil {
			return
		}
		cs.logger.Warn("ConsumerService", "Forwarding failed, handling locally", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}

	if cs.local != nil {
		if err := cs.local(ctx, event); err != nil {
			cs.logger.Error("ConsumerService", "Local handler failed", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}
}
