package orders

import (
	"context"
	"log"
	"time"

	"github.com/example/order-fulfillment/internal/contract"
	"github.com/example/order-fulfillment/internal/domain/order"
	"github.com/example/order-fulfillment/internal/messaging"
)

// EventPublisher translates order domain events into integration messages on
// the bus. It is the anti-corruption layer between the domain and the
// published language: payloads are flattened to the stable wire schema.
// Unrecognized event kinds are logged and discarded, never failed on.
type EventPublisher struct {
	bus messaging.Bus
}

func NewEventPublisher(bus messaging.Bus) *EventPublisher {
	return &EventPublisher{bus: bus}
}

func (p *EventPublisher) PublishDomainEvents(ctx context.Context, events []order.Event) error {
	for _, event := range events {
		switch event.Kind {
		case order.KindOrderPlaced:
			payload := orderPlacedPayload(event.OrderPlaced)
			if err := p.bus.Publish(ctx, contract.TopicOrderPlaced, payload); err != nil {
				return err
			}
		default:
			log.Printf("[OrdersPublisher] Unknown event kind %q. Discarded.", event.Kind)
		}
	}
	return nil
}

func orderPlacedPayload(event *order.OrderPlaced) contract.OrderPlacedPayload {
	items := make([]contract.OrderPlacedItem, len(event.Items))
	for i, item := range event.Items {
		items[i] = contract.OrderPlacedItem{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity().Value(),
			UnitPrice: item.UnitPrice().Float64(),
		}
	}
	return contract.OrderPlacedPayload{
		OrderID:     event.OrderID.String(),
		CustomerID:  event.CustomerID.String(),
		CartID:      event.CartID.String(),
		Items:       items,
		TotalAmount: event.TotalAmount.Float64(),
		Currency:    event.TotalAmount.Currency(),
		ShippingAddress: contract.ShippingAddressPayload{
			Street:  event.ShippingAddress.Street,
			City:    event.ShippingAddress.City,
			State:   event.ShippingAddress.StateOrProvince,
			ZipCode: event.ShippingAddress.PostalCode,
			Country: event.ShippingAddress.Country,
		},
		Timestamp: event.OccurredAt.Format(time.RFC3339),
	}
}
