package order

import (
	"fmt"
	"time"

	"github.com/example/order-fulfillment/internal/domain/shared"
)

const AggregateType = "Order"

type Status string

const (
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusPaid            Status = "paid"
)

var (
	ErrEmptyOrder           = fmt.Errorf("%w: order must have at least one item", shared.ErrValidation)
	ErrInconsistentCurrency = fmt.Errorf("%w: all order items and discounts must use the same currency", shared.ErrValidation)
	ErrOrderAlreadyPaid     = fmt.Errorf("%w: order is already paid", shared.ErrStateTransition)
	ErrDiscountAfterPaid    = fmt.Errorf("%w: cannot apply global discount to paid order", shared.ErrStateTransition)
	ErrInvalidOrderStatus   = fmt.Errorf("%w: order status must be awaiting_payment or paid", shared.ErrValidation)
)

// Order is the order aggregate root. Its item list and shipping address are
// snapshots owned by the order; nothing aliases back to the originating cart.
// Status moves one way: awaiting_payment -> paid.
type Order struct {
	id              shared.OrderID
	cartID          shared.CartID
	customerID      shared.CustomerID
	items           []Item
	shippingAddress ShippingAddress
	globalDiscount  shared.Money
	total           shared.Money
	status          Status
	paymentID       string
	version         int
	events          []Event
}

// Create builds a new order in awaiting_payment and records the OrderPlaced
// domain event. The items must already be priced snapshots.
func Create(cartID shared.CartID, customerID shared.CustomerID, items []Item, address ShippingAddress, globalDiscount shared.Money) (*Order, error) {
	o := &Order{
		id:              shared.NewOrderID(),
		cartID:          cartID,
		customerID:      customerID,
		items:           append([]Item(nil), items...),
		shippingAddress: address,
		globalDiscount:  globalDiscount,
		status:          StatusAwaitingPayment,
	}
	total, err := o.validate()
	if err != nil {
		return nil, err
	}
	o.total = total
	o.events = append(o.events, o.placedEvent())
	return o, nil
}

// ApplyGlobalDiscount replaces the order-level discount. It re-validates the
// total so a discount can never drive it negative, and leaves the order
// untouched when validation fails.
func (o *Order) ApplyGlobalDiscount(discount shared.Money) error {
	if o.status == StatusPaid {
		return fmt.Errorf("%w (order %s)", ErrDiscountAfterPaid, o.id)
	}
	previous := o.globalDiscount
	o.globalDiscount = discount
	total, err := o.validate()
	if err != nil {
		o.globalDiscount = previous
		return err
	}
	o.total = total
	o.refreshPlacedEvent()
	return nil
}

// MarkAsPaid transitions the order to paid and records the payment id. A
// second call fails and leaves status and payment id unchanged.
func (o *Order) MarkAsPaid(paymentID string) error {
	if o.status == StatusPaid {
		return fmt.Errorf("%w: cannot transition order %s from %s to %s", ErrOrderAlreadyPaid, o.id, o.status, StatusPaid)
	}
	o.status = StatusPaid
	o.paymentID = paymentID
	return nil
}

// TotalAmount is sum(lineTotal) - globalDiscount. The value is maintained by
// every validated mutation, so it is always consistent with the items.
func (o *Order) TotalAmount() shared.Money { return o.total }

func (o *Order) ID() shared.OrderID               { return o.id }
func (o *Order) CartID() shared.CartID            { return o.cartID }
func (o *Order) CustomerID() shared.CustomerID    { return o.customerID }
func (o *Order) ShippingAddress() ShippingAddress { return o.shippingAddress }
func (o *Order) GlobalDiscount() shared.Money     { return o.globalDiscount }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) PaymentID() string                { return o.paymentID }

// Items returns a snapshot of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// DomainEvents returns the events recorded since the last clear.
func (o *Order) DomainEvents() []Event {
	out := make([]Event, len(o.events))
	copy(out, o.events)
	return out
}

func (o *Order) ClearDomainEvents() { o.events = nil }

// Version is the persistence version used for optimistic concurrency.
func (o *Order) Version() int     { return o.version }
func (o *Order) SetVersion(v int) { o.version = v }

// validate enforces the aggregate invariants and returns the resulting total:
// at least one item, every unit price and discount in the global discount's
// currency, and a non-negative total.
func (o *Order) validate() (shared.Money, error) {
	if len(o.items) == 0 {
		return shared.Money{}, ErrEmptyOrder
	}
	currency := o.globalDiscount.Currency()
	total, err := shared.ZeroMoney(currency)
	if err != nil {
		return shared.Money{}, err
	}
	for _, item := range o.items {
		if item.UnitPrice().Currency() != currency || item.ItemDiscount().Currency() != currency {
			return shared.Money{}, ErrInconsistentCurrency
		}
		total, err = total.Add(item.LineTotal())
		if err != nil {
			return shared.Money{}, err
		}
	}
	return total.Subtract(o.globalDiscount)
}

func (o *Order) placedEvent() Event {
	return Event{
		Kind: KindOrderPlaced,
		OrderPlaced: &OrderPlaced{
			OrderID:         o.id,
			CustomerID:      o.customerID,
			CartID:          o.cartID,
			Items:           o.Items(),
			TotalAmount:     o.total,
			ShippingAddress: o.shippingAddress,
			OccurredAt:      time.Now().UTC(),
		},
	}
}

// refreshPlacedEvent keeps a still-pending OrderPlaced event in sync with the
// current total; the event is published only after checkout completes.
func (o *Order) refreshPlacedEvent() {
	for i, ev := range o.events {
		if ev.Kind == KindOrderPlaced && ev.OrderPlaced != nil {
			updated := *ev.OrderPlaced
			updated.TotalAmount = o.total
			updated.Items = o.Items()
			o.events[i].OrderPlaced = &updated
		}
	}
}
