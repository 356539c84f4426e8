package orders

import (
	"context"
	"log"

	"github.com/example/order-fulfillment/internal/domain/cart"
	"github.com/example/order-fulfillment/internal/domain/order"
	"github.com/example/order-fulfillment/internal/domain/shared"
)

// OrderService drives checkout and the order use cases.
type OrderService struct {
	carts     cart.Repository
	orders    order.Repository
	checkout  *order.CheckoutService
	publisher *EventPublisher
}

func NewOrderService(carts cart.Repository, orders order.Repository, checkout *order.CheckoutService, publisher *EventPublisher) *OrderService {
	return &OrderService{
		carts:     carts,
		orders:    orders,
		checkout:  checkout,
		publisher: publisher,
	}
}

// Checkout converts a cart into an order. The cart stays active until the
// order exists, so pricing failures leave it recoverable. The order is
// persisted before its events go out: a subscriber reacting to order.placed
// must be able to load the order. Saves and publish are not one transaction;
// a crash after the saves leaves an order whose event never went out, a
// window only an outbox could close.
func (s *OrderService) Checkout(ctx context.Context, cartID string, address order.ShippingAddress) (*order.Order, error) {
	id, err := shared.ParseCartID(cartID)
	if err != nil {
		return nil, err
	}
	c, err := s.carts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	o, err := s.checkout.CreateOrderFromCart(ctx, c, address)
	if err != nil {
		return nil, err
	}

	if err := c.MarkAsConverted(); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	events := o.DomainEvents()
	o.ClearDomainEvents()
	if err := s.publisher.PublishDomainEvents(ctx, events); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	id, err := shared.ParseOrderID(orderID)
	if err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, id)
}

// MarkOrderAsPaid applies an external payment confirmation to an order.
func (s *OrderService) MarkOrderAsPaid(ctx context.Context, orderID, paymentID string) error {
	id, err := shared.ParseOrderID(orderID)
	if err != nil {
		return err
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := o.MarkAsPaid(paymentID); err != nil {
		return err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return err
	}
	log.Printf("[Orders] Order %s marked paid (payment %s)", orderID, paymentID)
	return nil
}
