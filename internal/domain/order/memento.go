package order

import (
	"fmt"

	"github.com/example/order-fulfillment/internal/domain/shared"
)

// Memento is the persistable shape of an order. Amounts are decimal strings so
// no precision is lost in storage backends that only speak JSON.
type Memento struct {
	OrderID         string          `json:"order_id"`
	CartID          string          `json:"cart_id"`
	CustomerID      string          `json:"customer_id"`
	Items           []ItemMemento   `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Currency        string          `json:"currency"`
	GlobalDiscount  string          `json:"global_discount"`
	Status          string          `json:"status"`
	PaymentID       string          `json:"payment_id,omitempty"`
	Version         int             `json:"version"`
}

type ItemMemento struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	ItemDiscount string `json:"item_discount"`
}

func (o *Order) Memento() Memento {
	items := make([]ItemMemento, len(o.items))
	for i, item := range o.items {
		items[i] = ItemMemento{
			ProductID:    item.productID.String(),
			Quantity:     item.quantity.Value(),
			UnitPrice:    item.unitPrice.Amount().String(),
			ItemDiscount: item.itemDiscount.Amount().String(),
		}
	}
	return Memento{
		OrderID:         o.id.String(),
		CartID:          o.cartID.String(),
		CustomerID:      o.customerID.String(),
		Items:           items,
		ShippingAddress: o.shippingAddress,
		Currency:        o.globalDiscount.Currency(),
		GlobalDiscount:  o.globalDiscount.Amount().String(),
		Status:          string(o.status),
		PaymentID:       o.paymentID,
		Version:         o.version,
	}
}

// Restore rebuilds an order from its persisted shape, re-running every
// invariant. Restored orders carry no pending domain events.
func Restore(m Memento) (*Order, error) {
	id, err := shared.ParseOrderID(m.OrderID)
	if err != nil {
		return nil, err
	}
	cartID, err := shared.ParseCartID(m.CartID)
	if err != nil {
		return nil, err
	}
	customerID, err := shared.NewCustomerID(m.CustomerID)
	if err != nil {
		return nil, err
	}
	status := Status(m.Status)
	if status != StatusAwaitingPayment && status != StatusPaid {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidOrderStatus, m.Status)
	}
	globalDiscount, err := shared.NewMoneyFromString(m.GlobalDiscount, m.Currency)
	if err != nil {
		return nil, err
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
		unitPrice, err := shared.NewMoneyFromString(im.UnitPrice, m.Currency)
		if err != nil {
			return nil, err
		}
		itemDiscount, err := shared.NewMoneyFromString(im.ItemDiscount, m.Currency)
		if err != nil {
			return nil, err
		}
		item, err := NewItem(productID, quantity, unitPrice, itemDiscount)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	o := &Order{
		id:              id,
		cartID:          cartID,
		customerID:      customerID,
		items:           items,
		shippingAddress: m.ShippingAddress,
		globalDiscount:  globalDiscount,
		status:          status,
		paymentID:       m.PaymentID,
		version:         m.Version,
	}
	total, err := o.validate()
	if err != nil {
		return nil, err
	}
	o.total = total
	return o, nil
}
