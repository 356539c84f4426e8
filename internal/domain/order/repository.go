package order

import (
	"context"
	"fmt"

	"github.com/example/order-fulfillment/internal/domain/shared"
)

var (
	ErrOrderNotFound   = fmt.Errorf("%w: order", shared.ErrNotFound)
	ErrVersionConflict = fmt.Errorf("%w: order was modified concurrently", shared.ErrStateTransition)
)

// Repository persists order aggregates. Save must reject stale aggregates
// with ErrVersionConflict.
type Repository interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id shared.OrderID) (*Order, error)
}
