package orders

import (
	"context"
	"errors"
	"log"

	"github.com/example/order-fulfillment/internal/contract"
	"github.com/example/order-fulfillment/internal/domain/order"
	"github.com/example/order-fulfillment/internal/domain/shared"
)

// PaymentApprovedHandler applies payment.approved messages to orders.
//
// Delivery is at-least-once, so the handler must behave sensibly on a
// duplicate: MarkAsPaid rejects the second application and the error is
// returned to the bus layer, which owns redelivery and dead-letter policy.
// A missing order is logged and dropped instead (the payment may refer to an
// order this deployment never saw).
type PaymentApprovedHandler struct {
	orders order.Repository
}

func NewPaymentApprovedHandler(orders order.Repository) *PaymentApprovedHandler {
	return &PaymentApprovedHandler{orders: orders}
}

func (h *PaymentApprovedHandler) Handle(ctx context.Context, payload contract.PaymentApprovedPayload) error {
	orderID, err := shared.ParseOrderID(payload.OrderID)
	if err != nil {
		return err
	}

	o, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Printf("[Orders] Order %s not found, ignoring payment.approved for payment %s",
				payload.OrderID, payload.PaymentID)
			return nil
		}
		return err
	}

	if err := o.MarkAsPaid(payload.PaymentID); err != nil {
		log.Printf("[Orders] Failed to mark order %s as paid: %v", payload.OrderID, err)
		return err
	}

	if err := h.orders.Save(ctx, o); err != nil {
		return err
	}

	log.Printf("[Orders] Order %s payment processing complete", payload.OrderID)
	return nil
}
