package order

import (
	"context"

	"github.com/example/order-fulfillment/internal/domain/cart"
	"github.com/example/order-fulfillment/internal/domain/shared"
	"golang.org/x/sync/errgroup"
)

// PricingGateway is the contract with the external pricing context. Every
// returned Money's currency is authoritative for that call; the order's
// currency-consistency invariant rejects responses that conflict with a
// previously captured line.
type PricingGateway interface {
	ProductPrice(ctx context.Context, productID shared.ProductID) (shared.Money, error)
	ProductDiscount(ctx context.Context, productID shared.ProductID, customerID shared.CustomerID, quantity shared.Quantity) (shared.Money, error)
	OrderDiscount(ctx context.Context, customerID shared.CustomerID, orderTotal shared.Money) (shared.Money, error)
}

// CheckoutService builds orders from carts. It never mutates the cart: the
// caller converts the cart only after the order exists, so a pricing failure
// leaves the cart usable.
type CheckoutService struct {
	pricing PricingGateway
}

func NewCheckoutService(pricing PricingGateway) *CheckoutService {
	return &CheckoutService{pricing: pricing}
}

// CreateOrderFromCart prices every cart line, builds the order with a zero
// global discount in the first resolved currency, then fetches and applies
// the order-level discount. Gateway errors propagate unmodified.
func (s *CheckoutService) CreateOrderFromCart(ctx context.Context, c *cart.ShoppingCart, address ShippingAddress) (*Order, error) {
	if c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}
	if c.IsConverted() {
		return nil, cart.ErrCartConverted
	}

	lines := c.Items()
	type pricedLine struct {
		unitPrice shared.Money
		discount  shared.Money
	}
	priced := make([]pricedLine, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			unitPrice, err := s.pricing.ProductPrice(gctx, line.ProductID())
			if err != nil {
				return err
			}
			discount, err := s.pricing.ProductDiscount(gctx, line.ProductID(), c.CustomerID(), line.Quantity())
			if err != nil {
				return err
			}
			priced[i] = pricedLine{unitPrice: unitPrice, discount: discount}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]Item, len(lines))
	for i, line := range lines {
		item, err := NewItem(line.ProductID(), line.Quantity(), priced[i].unitPrice, priced[i].discount)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}

	zero, err := shared.ZeroMoney(items[0].UnitPrice().Currency())
	if err != nil {
		return nil, err
	}
	o, err := Create(c.ID(), c.CustomerID(), items, address, zero)
	if err != nil {
		return nil, err
	}

	globalDiscount, err := s.pricing.OrderDiscount(ctx, c.CustomerID(), o.TotalAmount())
	if err != nil {
		return nil, err
	}
	if err := o.ApplyGlobalDiscount(globalDiscount); err != nil {
		return nil, err
	}
	return o, nil
}
