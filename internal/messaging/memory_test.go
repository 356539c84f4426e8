package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishDeliversToSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	var received []Envelope

	err := bus.Subscribe("order.placed", func(ctx context.Context, msg Envelope) error {
		received = append(received, msg)
		return nil
	})
	require.NoError(t, err)

	err = bus.Publish(context.Background(), "order.placed", map[string]string{"orderId": "o-1"})

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "order.placed", received[0].Topic)
	assert.NotEmpty(t, received[0].MessageID)
	assert.False(t, received[0].Timestamp.IsZero())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(received[0].Payload, &payload))
	assert.Equal(t, "o-1", payload["orderId"])
}

func TestMemoryBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), "payment.denied", map[string]string{})

	assert.NoError(t, err)
}

func TestMemoryBus_TopicIsolation(t *testing.T) {
	bus := NewMemoryBus()
	var approved, denied int

	require.NoError(t, bus.Subscribe("payment.approved", func(ctx context.Context, msg Envelope) error {
		approved++
		return nil
	}))
	require.NoError(t, bus.Subscribe("payment.denied", func(ctx context.Context, msg Envelope) error {
		denied++
		return nil
	}))

	require.NoError(t, bus.Publish(context.Background(), "payment.approved", map[string]string{}))

	assert.Equal(t, 1, approved)
	assert.Equal(t, 0, denied)
}

func TestMemoryBus_HandlerErrorsJoined(t *testing.T) {
	bus := NewMemoryBus()
	errBoom := errors.New("boom")
	var secondCalled bool

	require.NoError(t, bus.Subscribe("order.placed", func(ctx context.Context, msg Envelope) error {
		return errBoom
	}))
	require.NoError(t, bus.Subscribe("order.placed", func(ctx context.Context, msg Envelope) error {
		secondCalled = true
		return nil
	}))

	err := bus.Publish(context.Background(), "order.placed", map[string]string{})

	assert.ErrorIs(t, err, errBoom)
	// A failing handler does not block the others
	assert.True(t, secondCalled)
}

func TestMemoryBus_EachPublishGetsFreshMessageID(t *testing.T) {
	bus := NewMemoryBus()
	var ids []string

	require.NoError(t, bus.Subscribe("order.placed", func(ctx context.Context, msg Envelope) error {
		ids = append(ids, msg.MessageID)
		return nil
	}))

	require.NoError(t, bus.Publish(context.Background(), "order.placed", map[string]string{}))
	require.NoError(t, bus.Publish(context.Background(), "order.placed", map[string]string{}))

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}
