package order

import (
	"github.com/example/order-fulfillment/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Item is an immutable price snapshot for one order line, taken at order
// creation time. The line total is computed once during construction, which
// also enforces that the discount never exceeds unitPrice × quantity and that
// both Money values share a currency.
type Item struct {
	productID    shared.ProductID
	quantity     shared.Quantity
	unitPrice    shared.Money
	itemDiscount shared.Money
	lineTotal    shared.Money
}

func NewItem(productID shared.ProductID, quantity shared.Quantity, unitPrice, itemDiscount shared.Money) (Item, error) {
	subtotal, err := unitPrice.Multiply(decimal.NewFromInt(int64(quantity.Value())))
	if err != nil {
		return Item{}, err
	}
	lineTotal, err := subtotal.Subtract(itemDiscount)
	if err != nil {
		return Item{}, err
	}
	return Item{
		productID:    productID,
		quantity:     quantity,
		unitPrice:    unitPrice,
		itemDiscount: itemDiscount,
		lineTotal:    lineTotal,
	}, nil
}

func (i Item) ProductID() shared.ProductID { return i.productID }
func (i Item) Quantity() shared.Quantity   { return i.quantity }
func (i Item) UnitPrice() shared.Money     { return i.unitPrice }
func (i Item) ItemDiscount() shared.Money  { return i.itemDiscount }
func (i Item) LineTotal() shared.Money     { return i.lineTotal }
