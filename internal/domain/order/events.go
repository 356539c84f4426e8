package order

import (
	"time"

	"github.com/example/order-fulfillment/internal/domain/shared"
)

// EventKind tags the domain events an order can raise. Dispatch is an
// exhaustive switch on the kind; unknown kinds must be logged and dropped,
// never failed on.
type EventKind string

const KindOrderPlaced EventKind = "OrderPlaced"

// Event is a tagged union of order domain events. Exactly one payload field
// is set, matching Kind.
type Event struct {
	Kind        EventKind
	OrderPlaced *OrderPlaced
}

// OrderPlaced is raised when checkout produces a new order. It carries a full
// snapshot so the publisher can build the integration message without
// reaching back into the aggregate.
type OrderPlaced struct {
	OrderID         shared.OrderID
	CustomerID      shared.CustomerID
	CartID          shared.CartID
	Items           []Item
	TotalAmount     shared.Money
	ShippingAddress ShippingAddress
	OccurredAt      time.Time
}
