package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"notestack-be/internal/pkg/logger"
	"notestack-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "domain-events-test"

type collector struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (c *collector) Publish(_ context.Context, event events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, event)
	return nil
}

func (c *collector) handle(ctx context.Context, event events.Event) error {
	return c.Publish(ctx, event)
}

func (c *collector) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.EventType())
	}
	return out
}

func startPipeline(t *testing.T, forwarder EventForwarder, local EventHandler) IPublisherService {
	t.Helper()

	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	consumer := NewConsumerService(bus, testTopic, forwarder, local, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	return NewPublisherService(testTopic, bus, logger.NewNopLogger())
}

func TestConsumerHandlesLocallyWithoutForwarder(t *testing.T) {
	local := &collector{}
	publisher := startPipeline(t, nil, local.handle)

	publisher.Publish(context.Background(), events.New(events.NoteCreated, map[string]interface{}{"user_id": "u1"}))

	require.Eventually(t, func() bool {
		return len(local.types()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{events.NoteCreated}, local.types())
}

func TestConsumerPrefersForwarder(t *testing.T) {
	forwarder := &collector{}
	local := &collector{}
	publisher := startPipeline(t, forwarder, local.handle)

	publisher.Publish(context.Background(), events.New(events.NoteReceived, nil))

	require.Eventually(t, func() bool {
		return len(forwarder.types()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, local.types())
}

func TestConsumerFallsBackWhenForwardingFails(t *testing.T) {
	forwarder := &collector{err: errors.New("nats down")}
	local := &collector{}
	publisher := startPipeline(t, forwarder, local.handle)

	publisher.Publish(context.Background(), events.New(events.NoteDeleted, nil))

	require.Eventually(t, func() bool {
		return len(local.types()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestConsumerSkipsUndecodableMessages(t *testing.T) {
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = bus.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	local := &collector{}
	require.NoError(t, NewConsumerService(bus, testTopic, nil, local.handle, logger.NewNopLogger()).Consume(ctx))

	require.NoError(t, bus.Publish(testTopic, message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	require.NoError(t, bus.Publish(testTopic, message.NewMessage(watermill.NewUUID(), []byte(`{"data":{}}`))))
	NewPublisherService(testTopic, bus, logger.NewNopLogger()).Publish(ctx, events.New(events.NoteShared, nil))

	require.Eventually(t, func() bool {
		return len(local.types()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{events.NoteShared}, local.types())
}
