package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/order-fulfillment/internal/domain/cart"
	"github.com/example/order-fulfillment/internal/domain/shared"
)

// PostgresCartRepository stores cart mementos in the shopping_carts table.
// Save is a compare-and-swap on the version column; a stale aggregate gets
// cart.ErrVersionConflict instead of silently losing an update.
type PostgresCartRepository struct {
	db *sql.DB
}

func NewPostgresCartRepository(db *sql.DB) *PostgresCartRepository {
	return &PostgresCartRepository{db: db}
}

func (r *PostgresCartRepository) Save(ctx context.Context, c *cart.ShoppingCart) error {
	m := c.Memento()
	next := c.Version() + 1
	m.Version = next
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	if c.Version() == 0 {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO shopping_carts (id, customer_id, status, data, version, updated_at)
			 VALUES ($1, $2, $3, $4, $5, now())`,
			m.CartID, m.CustomerID, m.Status, data, next,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cart: %w", err)
		}
		c.SetVersion(next)
		return nil
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE shopping_carts
		 SET status = $1, data = $2, version = $3, updated_at = now()
		 WHERE id = $4 AND version = $5`,
		m.Status, data, next, m.CartID, c.Version(),
	)
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w (cart %s, version %d)", cart.ErrVersionConflict, m.CartID, c.Version())
	}
	c.SetVersion(next)
	return nil
}

func (r *PostgresCartRepository) FindByID(ctx context.Context, id shared.CartID) (*cart.ShoppingCart, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM shopping_carts WHERE id = $1`, id.String(),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w %s", cart.ErrCartNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return restoreCart(data)
}

func (r *PostgresCartRepository) FindByCustomerID(ctx context.Context, customerID shared.CustomerID) ([]*cart.ShoppingCart, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM shopping_carts WHERE customer_id = $1 ORDER BY updated_at DESC`,
		customerID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carts []*cart.ShoppingCart
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		c, err := restoreCart(data)
		if err != nil {
			return nil, err
		}
		carts = append(carts, c)
	}
	return carts, rows.Err()
}

func (r *PostgresCartRepository) Delete(ctx context.Context, id shared.CartID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM shopping_carts WHERE id = $1`, id.String())
	return err
}

func restoreCart(data []byte) (*cart.ShoppingCart, error) {
	var m cart.Memento
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return cart.Restore(m)
}
