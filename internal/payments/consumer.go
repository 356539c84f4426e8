package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/example/order-fulfillment/internal/contract"
	"github.com/example/order-fulfillment/internal/messaging"
)

// OrderConsumer subscribes the Payments context to order.placed and publishes
// exactly one of payment.approved / payment.denied per received message.
type OrderConsumer struct {
	bus     messaging.Bus
	service *Service
}

func NewOrderConsumer(bus messaging.Bus, service *Service) *OrderConsumer {
	return &OrderConsumer{bus: bus, service: service}
}

func (c *OrderConsumer) Start() error {
	if err := c.bus.Subscribe(contract.TopicOrderPlaced, c.handleOrderPlaced); err != nil {
		return err
	}
	log.Printf("[Payments] Subscribed to %s", contract.TopicOrderPlaced)
	return nil
}

func (c *OrderConsumer) handleOrderPlaced(ctx context.Context, msg messaging.Envelope) error {
	var payload contract.OrderPlacedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[Payments] Malformed order.placed message %s: %v", msg.MessageID, err)
		return fmt.Errorf("malformed order.placed payload: %w", err)
	}

	log.Printf("[Payments] Received order.placed message %s for order %s", msg.MessageID, payload.OrderID)

	result, err := c.service.ProcessPayment(ctx, Request{
		OrderID:  payload.OrderID,
		Amount:   payload.TotalAmount,
		Currency: payload.Currency,
	})
	if err != nil {
		log.Printf("[Payments] Failed to process payment for message %s: %v", msg.MessageID, err)
		return err
	}

	return c.PublishResult(ctx, payload.OrderID, payload.TotalAmount, payload.Currency, result)
}

// PublishResult emits the outcome message for a processed payment. Shared
// with the manual payment endpoint so both paths speak the same language.
func (c *OrderConsumer) PublishResult(ctx context.Context, orderID string, amount float64, currency string, result Result) error {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if !result.Approved {
		return c.bus.Publish(ctx, contract.TopicPaymentDenied, contract.PaymentDeniedPayload{
			OrderID:   orderID,
			Reason:    result.Reason,
			Timestamp: timestamp,
		})
	}

	return c.bus.Publish(ctx, contract.TopicPaymentApproved, contract.PaymentApprovedPayload{
		OrderID:        orderID,
		PaymentID:      result.PaymentID,
		ApprovedAmount: amount,
		Currency:       currency,
		Timestamp:      timestamp,
	})
}
