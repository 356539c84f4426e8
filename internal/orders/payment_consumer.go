package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/order-fulfillment/internal/contract"
	"github.com/example/order-fulfillment/internal/messaging"
)

// PaymentConsumer subscribes the Orders context to the Payments topics.
type PaymentConsumer struct {
	bus     messaging.Bus
	handler *PaymentApprovedHandler
}

func NewPaymentConsumer(bus messaging.Bus, handler *PaymentApprovedHandler) *PaymentConsumer {
	return &PaymentConsumer{bus: bus, handler: handler}
}

func (c *PaymentConsumer) Start() error {
	if err := c.bus.Subscribe(contract.TopicPaymentApproved, c.handlePaymentApproved); err != nil {
		return err
	}
	log.Printf("[Orders] Subscribed to %s", contract.TopicPaymentApproved)
	return nil
}

func (c *PaymentConsumer) handlePaymentApproved(ctx context.Context, msg messaging.Envelope) error {
	var payload contract.PaymentApprovedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[Orders] Malformed payment.approved message %s: %v", msg.MessageID, err)
		return fmt.Errorf("malformed payment.approved payload: %w", err)
	}

	if err := c.handler.Handle(ctx, payload); err != nil {
		// Re-thrown so the bus layer can decide redelivery or dead-lettering.
		log.Printf("[Orders] Failed to handle %s message %s: %v", msg.Topic, msg.MessageID, err)
		return err
	}
	return nil
}
