// Package notification listens for payment confirmations and emails the
// customer a receipt. It reads the order for display purposes only and never
// mutates it.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/order-fulfillment/internal/contract"
	"github.com/example/order-fulfillment/internal/domain/order"
	"github.com/example/order-fulfillment/internal/domain/shared"
	"github.com/example/order-fulfillment/internal/email"
	"github.com/example/order-fulfillment/internal/messaging"
)

// EmailResolver maps a customer id to the address receipts are sent to.
type EmailResolver interface {
	CustomerEmail(ctx context.Context, customerID string) (string, error)
}

// ReceiptSender delivers a rendered payment receipt.
type ReceiptSender interface {
	SendPaymentReceipt(to string, receipt email.Receipt) error
}

// Notifier subscribes to payment.approved and sends one receipt per message.
type Notifier struct {
	bus      messaging.Bus
	orders   order.Repository
	resolver EmailResolver
	sender   ReceiptSender
}

func NewNotifier(bus messaging.Bus, orders order.Repository, resolver EmailResolver, sender ReceiptSender) *Notifier {
	return &Notifier{
		bus:      bus,
		orders:   orders,
		resolver: resolver,
		sender:   sender,
	}
}

func (n *Notifier) Start() error {
	if err := n.bus.Subscribe(contract.TopicPaymentApproved, n.handlePaymentApproved); err != nil {
		return err
	}
	log.Printf("[Notifier] Subscribed to %s", contract.TopicPaymentApproved)
	return nil
}

func (n *Notifier) handlePaymentApproved(ctx context.Context, msg messaging.Envelope) error {
	var payload contract.PaymentApprovedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[Notifier] Malformed payment.approved message %s: %v", msg.MessageID, err)
		return fmt.Errorf("malformed payment.approved payload: %w", err)
	}

	orderID, err := shared.ParseOrderID(payload.OrderID)
	if err != nil {
		log.Printf("[Notifier] Invalid order id in message %s: %v", msg.MessageID, err)
		return err
	}

	o, err := n.orders.FindByID(ctx, orderID)
	if err != nil {
		log.Printf("[Notifier] Cannot load order %s for receipt: %v", payload.OrderID, err)
		return err
	}

	to, err := n.resolver.CustomerEmail(ctx, o.CustomerID().String())
	if err != nil {
		log.Printf("[Notifier] No email for customer %s, skipping receipt for order %s: %v",
			o.CustomerID(), payload.OrderID, err)
		return nil
	}

	receipt := email.Receipt{
		OrderID:   o.ID().String(),
		PaymentID: payload.PaymentID,
		Total:     o.TotalAmount().String(),
	}
	for _, item := range o.Items() {
		receipt.Items = append(receipt.Items, email.ReceiptItem{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity().Value(),
			LineTotal: item.LineTotal().String(),
		})
	}

	if err := n.sender.SendPaymentReceipt(to, receipt); err != nil {
		log.Printf("[Notifier] Failed to send receipt for order %s to %s: %v", payload.OrderID, to, err)
		return err
	}

	log.Printf("[Notifier] Receipt for order %s sent to %s", payload.OrderID, to)
	return nil
}
