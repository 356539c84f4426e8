package cart

import (
	"context"
	"fmt"

	"github.com/example/order-fulfillment/internal/domain/shared"
)

var (
	ErrCartNotFound    = fmt.Errorf("%w: cart", shared.ErrNotFound)
	ErrVersionConflict = fmt.Errorf("%w: cart was modified concurrently", shared.ErrStateTransition)
)

// Repository persists cart aggregates. Save must reject stale aggregates with
// ErrVersionConflict (optimistic concurrency); the aggregate itself does not
// serialize concurrent writers.
type Repository interface {
	Save(ctx context.Context, c *ShoppingCart) error
	FindByID(ctx context.Context, id shared.CartID) (*ShoppingCart, error)
	FindByCustomerID(ctx context.Context, customerID shared.CustomerID) ([]*ShoppingCart, error)
	Delete(ctx context.Context, id shared.CartID) error
}
