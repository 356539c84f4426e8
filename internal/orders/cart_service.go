// Package orders is the application layer of the Orders bounded context:
// cart and order use cases, the domain-event publisher, and the handler for
// inbound payment messages.
package orders

import (
	"context"

	"github.com/example/order-fulfillment/internal/domain/cart"
	"github.com/example/order-fulfillment/internal/domain/shared"
)

// CartService drives the shopping-cart use cases.
type CartService struct {
	carts cart.Repository
}

func NewCartService(carts cart.Repository) *CartService {
	return &CartService{carts: carts}
}

func (s *CartService) CreateCart(ctx context.Context, customerID string) (*cart.ShoppingCart, error) {
	cid, err := shared.NewCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	c := cart.Create(cid)
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (*cart.ShoppingCart, error) {
	id, err := shared.ParseCartID(cartID)
	if err != nil {
		return nil, err
	}
	c, err := s.carts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pid, err := shared.NewProductID(productID)
	if err != nil {
		return nil, err
	}
	qty, err := shared.NewQuantity(quantity)
	if err != nil {
		return nil, err
	}
	if err := c.AddItem(pid, qty); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) GetCart(ctx context.Context, cartID string) (*cart.ShoppingCart, error) {
	id, err := shared.ParseCartID(cartID)
	if err != nil {
		return nil, err
	}
	return s.carts.FindByID(ctx, id)
}

func (s *CartService) ListCustomerCarts(ctx context.Context, customerID string) ([]*cart.ShoppingCart, error) {
	cid, err := shared.NewCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	return s.carts.FindByCustomerID(ctx, cid)
}

func (s *CartService) DeleteCart(ctx context.Context, cartID string) error {
	id, err := shared.ParseCartID(cartID)
	if err != nil {
		return err
	}
	return s.carts.Delete(ctx, id)
}
