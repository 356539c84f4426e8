// Package pricing holds the stand-in implementation of the pricing gateway.
// A real deployment would replace it with a client for the pricing context.
package pricing

import (
	"context"
	"fmt"

	"github.com/example/order-fulfillment/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StubGateway simulates the external pricing context with a fixed price
// table. Rules: 10% line discount at quantity >= 3, a flat 10.00 order-level
// discount once the order total exceeds 100.00. All prices are USD.
type StubGateway struct {
	unitPrices map[string]decimal.Decimal
	currency   string
}

func NewStubGateway() *StubGateway {
	return &StubGateway{
		unitPrices: map[string]decimal.Decimal{
			"product-123":      decimal.NewFromFloat(10.00),
			"product-456":      decimal.NewFromFloat(20.00),
			"COFFEE-COL-001":   decimal.NewFromFloat(24.99),
			"TEA-EARL-001":     decimal.NewFromFloat(12.99),
			"MUG-CERAMIC-001":  decimal.NewFromFloat(15.99),
			"GRINDER-BURR-001": decimal.NewFromFloat(89.99),
		},
		currency: "USD",
	}
}

func (g *StubGateway) ProductPrice(ctx context.Context, productID shared.ProductID) (shared.Money, error) {
	price, ok := g.unitPrices[productID.String()]
	if !ok {
		return shared.Money{}, fmt.Errorf("%w: no price found for product %s", shared.ErrGateway, productID)
	}
	return shared.NewMoney(price, g.currency)
}

func (g *StubGateway) ProductDiscount(ctx context.Context, productID shared.ProductID, customerID shared.CustomerID, quantity shared.Quantity) (shared.Money, error) {
	price, ok := g.unitPrices[productID.String()]
	if !ok {
		return shared.Money{}, fmt.Errorf("%w: no price found for product %s", shared.ErrGateway, productID)
	}

	discount := decimal.Zero
	if quantity.Value() >= 3 {
		discount = price.Mul(decimal.NewFromInt(int64(quantity.Value()))).Mul(decimal.NewFromFloat(0.1))
	}
	return shared.NewMoney(discount, g.currency)
}

func (g *StubGateway) OrderDiscount(ctx context.Context, customerID shared.CustomerID, orderTotal shared.Money) (shared.Money, error) {
	discount := decimal.Zero
	if orderTotal.Amount().GreaterThan(decimal.NewFromInt(100)) {
		discount = decimal.NewFromInt(10)
	}
	return shared.NewMoney(discount, orderTotal.Currency())
}
