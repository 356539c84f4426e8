package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/order-fulfillment/internal/domain/order"
	"github.com/example/order-fulfillment/internal/domain/shared"
)

// PostgresOrderRepository stores order mementos in the orders table with the
// same compare-and-swap versioning as the cart repository.
type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) Save(ctx context.Context, o *order.Order) error {
	m := o.Memento()
	next := o.Version() + 1
	m.Version = next
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	if o.Version() == 0 {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO orders (id, customer_id, status, data, version, updated_at)
			 VALUES ($1, $2, $3, $4, $5, now())`,
			m.OrderID, m.CustomerID, m.Status, data, next,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		o.SetVersion(next)
		return nil
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE orders
		 SET status = $1, data = $2, version = $3, updated_at = now()
		 WHERE id = $4 AND version = $5`,
		m.Status, data, next, m.OrderID, o.Version(),
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w (order %s, version %d)", order.ErrVersionConflict, m.OrderID, o.Version())
	}
	o.SetVersion(next)
	return nil
}

func (r *PostgresOrderRepository) FindByID(ctx context.Context, id shared.OrderID) (*order.Order, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM orders WHERE id = $1`, id.String(),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w %s", order.ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var m order.Memento
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	return order.Restore(m)
}
