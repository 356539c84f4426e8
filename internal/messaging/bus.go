// Package messaging defines the topic-based pub/sub boundary between bounded
// contexts. Delivery is at-least-once: handlers must tolerate seeing the same
// logical message twice.
package messaging

import (
	"context"
	"encoding/json"
	"time"
)

// Envelope wraps every delivered message.
type Envelope struct {
	MessageID string          `json:"message_id"`
	Topic     string          `json:"topic"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Handler processes one delivered message. A returned error tells the bus
// layer the message failed; redelivery and dead-lettering are the bus's call.
type Handler func(ctx context.Context, msg Envelope) error

// Bus is the cross-context message bus. Publish completes (or fails) before
// returning; Subscribe registers a handler invoked once per delivered message.
type Bus interface {
	Publish(ctx context.Context, topic string, payload any) error
	Subscribe(topic string, handler Handler) error
}
