// Package kafka implements the message bus on Kafka topics. Each logical
// topic (order.placed, payment.approved, ...) maps to a Kafka topic;
// consumers join a group per process so contexts scale independently.
package kafka

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/example/order-fulfillment/internal/messaging"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Bus is a messaging.Bus backed by Kafka. Delivery is at-least-once: a
// handler error is logged and the read loop moves on, leaving redelivery to
// topic retention and consumer-group rewinds. The error return of the handler
// is the seam where a dead-letter producer would hook in.
type Bus struct {
	brokers []string
	groupID string
	writer  *kafka.Writer

	mu      sync.Mutex
	readers []*kafka.Reader
	cancel  context.CancelFunc
	ctx     context.Context
	wg      sync.WaitGroup
}

func NewBus(brokers []string, groupID string) *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Bus{
		brokers: brokers,
		groupID: groupID,
		writer:  writer,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Publish wraps the payload in an envelope and writes it to the topic. The
// write is acknowledged (or failed) before Publish returns.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := messaging.Envelope{
		MessageID: uuid.New().String(),
		Topic:     topic,
		Timestamp: time.Now().UTC(),
		Payload:   data,
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(msg.MessageID),
		Value: value,
		Time:  msg.Timestamp,
	})
}

// Subscribe starts a reader goroutine for the topic in this process's group.
func (b *Bus) Subscribe(topic string, handler messaging.Handler) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  b.brokers,
		Topic:    topic,
		GroupID:  b.groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})

	b.mu.Lock()
	b.readers = append(b.readers, reader)
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consume(reader, topic, handler)
	}()
	return nil
}

func (b *Bus) consume(reader *kafka.Reader, topic string, handler messaging.Handler) {
	for {
		msg, err := reader.ReadMessage(b.ctx)
		if err != nil {
			if b.ctx.Err() != nil {
				return
			}
			log.Printf("[KafkaBus] Error reading from %s: %v", topic, err)
			continue
		}

		var envelope messaging.Envelope
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			log.Printf("[KafkaBus] Dropping malformed message on %s: %v", topic, err)
			continue
		}
		if envelope.Topic == "" {
			envelope.Topic = topic
		}

		if err := handler(b.ctx, envelope); err != nil {
			log.Printf("[KafkaBus] Handler error on %s (message %s): %v", topic, envelope.MessageID, err)
		}
	}
}

// Close stops all readers and flushes the writer.
func (b *Bus) Close() error {
	b.cancel()
	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, reader := range b.readers {
		if err := reader.Close(); err != nil {
			log.Printf("[KafkaBus] Error closing reader: %v", err)
		}
	}
	return b.writer.Close()
}
