package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/order-fulfillment/internal/auth"
	"github.com/lib/pq"
)

// PostgresCustomerStore backs the auth service with the customers table.
type PostgresCustomerStore struct {
	db *sql.DB
}

func NewPostgresCustomerStore(db *sql.DB) *PostgresCustomerStore {
	return &PostgresCustomerStore{db: db}
}

func (s *PostgresCustomerStore) Create(ctx context.Context, c auth.Customer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Email, c.PasswordHash, c.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return auth.ErrCustomerExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

func (s *PostgresCustomerStore) FindByEmail(ctx context.Context, email string) (auth.Customer, error) {
	return s.findBy(ctx, `SELECT id, email, password_hash, created_at FROM customers WHERE email = $1`, email)
}

func (s *PostgresCustomerStore) FindByID(ctx context.Context, id string) (auth.Customer, error) {
	return s.findBy(ctx, `SELECT id, email, password_hash, created_at FROM customers WHERE id = $1`, id)
}

func (s *PostgresCustomerStore) findBy(ctx context.Context, query, arg string) (auth.Customer, error) {
	var c auth.Customer
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Customer{}, auth.ErrCustomerNotFound
	}
	if err != nil {
		return auth.Customer{}, err
	}
	return c, nil
}
