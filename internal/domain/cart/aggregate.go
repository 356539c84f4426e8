package cart

import (
	"fmt"

	"github.com/example/order-fulfillment/internal/domain/shared"
)

const AggregateType = "ShoppingCart"

type Status string

const (
	StatusActive    Status = "active"
	StatusConverted Status = "converted"
)

var (
	ErrCartConverted = fmt.Errorf("%w: cart has already been converted and cannot be modified", shared.ErrStateTransition)
	ErrEmptyCart     = fmt.Errorf("%w: cart has no items", shared.ErrValidation)
	ErrInvalidStatus = fmt.Errorf("%w: cart status must be active or converted", shared.ErrValidation)
)

// Item is a single cart line. Lines are owned by the cart; accessors hand out
// value copies so callers cannot mutate aggregate state.
type Item struct {
	productID shared.ProductID
	quantity  shared.Quantity
}

func (i Item) ProductID() shared.ProductID { return i.productID }
func (i Item) Quantity() shared.Quantity   { return i.quantity }

// ShoppingCart is the cart aggregate root. It is not safe for concurrent use;
// the repository layer serializes writers via the version check on save.
type ShoppingCart struct {
	id         shared.CartID
	customerID shared.CustomerID
	status     Status
	items      []Item
	version    int
}

// Create starts a new, empty, active cart for a customer.
func Create(customerID shared.CustomerID) *ShoppingCart {
	return &ShoppingCart{
		id:         shared.NewCartID(),
		customerID: customerID,
		status:     StatusActive,
	}
}

// AddItem adds a product to an active cart. Adding a product already in the
// cart consolidates into the existing line, so the quantity bound applies to
// the consolidated total.
func (c *ShoppingCart) AddItem(productID shared.ProductID, quantity shared.Quantity) error {
	if c.IsConverted() {
		return fmt.Errorf("%w (cart %s)", ErrCartConverted, c.id)
	}
	for i, item := range c.items {
		if item.productID == productID {
			combined, err := item.quantity.Add(quantity)
			if err != nil {
				return err
			}
			c.items[i].quantity = combined
			return nil
		}
	}
	c.items = append(c.items, Item{productID: productID, quantity: quantity})
	return nil
}

// MarkAsConverted ends the cart's lifecycle. The transition is one-way and
// requires at least one item.
func (c *ShoppingCart) MarkAsConverted() error {
	if c.IsConverted() {
		return fmt.Errorf("%w (cart %s)", ErrCartConverted, c.id)
	}
	if c.IsEmpty() {
		return fmt.Errorf("%w: cannot convert empty cart %s", ErrEmptyCart, c.id)
	}
	c.status = StatusConverted
	return nil
}

func (c *ShoppingCart) ID() shared.CartID             { return c.id }
func (c *ShoppingCart) CustomerID() shared.CustomerID { return c.customerID }
func (c *ShoppingCart) Status() Status                { return c.status }
func (c *ShoppingCart) IsEmpty() bool                 { return len(c.items) == 0 }
func (c *ShoppingCart) IsConverted() bool             { return c.status == StatusConverted }
func (c *ShoppingCart) ItemCount() int                { return len(c.items) }

// Items returns a snapshot of the cart lines.
func (c *ShoppingCart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item returns the line for a product, if present.
func (c *ShoppingCart) Item(productID shared.ProductID) (Item, bool) {
	for _, item := range c.items {
		if item.productID == productID {
			return item, true
		}
	}
	return Item{}, false
}

// Version is the persistence version used for optimistic concurrency.
func (c *ShoppingCart) Version() int     { return c.version }
func (c *ShoppingCart) SetVersion(v int) { c.version = v }
