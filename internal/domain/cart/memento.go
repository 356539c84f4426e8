package cart

import (
	"fmt"

	"github.com/example/order-fulfillment/internal/domain/shared"
)

// Memento is the persistable shape of a cart. Repositories serialize it;
// Restore re-validates everything on the way back in, so a stored row can
// never resurrect an invalid aggregate.
type Memento struct {
	CartID     string        `json:"cart_id"`
	CustomerID string        `json:"customer_id"`
	Status     string        `json:"status"`
	Items      []ItemMemento `json:"items"`
	Version    int           `json:"version"`
}

type ItemMemento struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (c *ShoppingCart) Memento() Memento {
	items := make([]ItemMemento, len(c.items))
	for i, item := range c.items {
		items[i] = ItemMemento{
			ProductID: item.productID.String(),
			Quantity:  item.quantity.Value(),
		}
	}
	return Memento{
		CartID:     c.id.String(),
		CustomerID: c.customerID.String(),
		Status:     string(c.status),
		Items:      items,
		Version:    c.version,
	}
}

// Restore rebuilds a cart from its persisted shape. A converted cart must not
// be empty; that invariant is checked here as well as on the transition.
func Restore(m Memento) (*ShoppingCart, error) {
	id, err := shared.ParseCartID(m.CartID)
	if err != nil {
		return nil, err
	}
	customerID, err := shared.NewCustomerID(m.CustomerID)
	if err != nil {
		return nil, err
	}
	status := Status(m.Status)
	if status != StatusActive && status != StatusConverted {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidStatus, m.Status)
	}
	items := make([]Item, 0, len(m.Items))
	for _, im := range m.Items {
		productID, err := shared.NewProductID(im.ProductID)
		if err != nil {
			return nil, err
		}
		quantity, err := shared.NewQuantity(im.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{productID: productID, quantity: quantity})
	}
	if status == StatusConverted && len(items) == 0 {
		return nil, fmt.Errorf("%w: cannot restore empty cart with converted status", ErrEmptyCart)
	}
	return &ShoppingCart{
		id:         id,
		customerID: customerID,
		status:     status,
		items:      items,
		version:    m.Version,
	}, nil
}
