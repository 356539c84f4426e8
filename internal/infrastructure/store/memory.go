package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/order-fulfillment/internal/auth"
	"github.com/example/order-fulfillment/internal/domain/cart"
	"github.com/example/order-fulfillment/internal/domain/order"
	"github.com/example/order-fulfillment/internal/domain/shared"
)

// MemoryCartRepository keeps carts in a map for tests and single-process
// demos. Aggregates round-trip through mementos so no caller ever aliases the
// stored state, and the same version check applies as in the real backends.
type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]cart.Memento
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[string]cart.Memento)}
}

func (r *MemoryCartRepository) Save(ctx context.Context, c *cart.ShoppingCart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.carts[c.ID().String()]
	if ok && existing.Version != c.Version() {
		return fmt.Errorf("%w (cart %s, version %d)", cart.ErrVersionConflict, c.ID(), c.Version())
	}
	if !ok && c.Version() != 0 {
		return fmt.Errorf("%w (cart %s, version %d)", cart.ErrVersionConflict, c.ID(), c.Version())
	}

	m := c.Memento()
	m.Version = c.Version() + 1
	r.carts[c.ID().String()] = m
	c.SetVersion(m.Version)
	return nil
}

func (r *MemoryCartRepository) FindByID(ctx context.Context, id shared.CartID) (*cart.ShoppingCart, error) {
	r.mu.RLock()
	m, ok := r.carts[id.String()]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %s", cart.ErrCartNotFound, id)
	}
	return cart.Restore(m)
}

func (r *MemoryCartRepository) FindByCustomerID(ctx context.Context, customerID shared.CustomerID) ([]*cart.ShoppingCart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var carts []*cart.ShoppingCart
	for _, m := range r.carts {
		if m.CustomerID != customerID.String() {
			continue
		}
		c, err := cart.Restore(m)
		if err != nil {
			return nil, err
		}
		carts = append(carts, c)
	}
	return carts, nil
}

func (r *MemoryCartRepository) Delete(ctx context.Context, id shared.CartID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, id.String())
	return nil
}

// MemoryOrderRepository is the in-memory order.Repository.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]order.Memento
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]order.Memento)}
}

func (r *MemoryOrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[o.ID().String()]
	if ok && existing.Version != o.Version() {
		return fmt.Errorf("%w (order %s, version %d)", order.ErrVersionConflict, o.ID(), o.Version())
	}
	if !ok && o.Version() != 0 {
		return fmt.Errorf("%w (order %s, version %d)", order.ErrVersionConflict, o.ID(), o.Version())
	}

	m := o.Memento()
	m.Version = o.Version() + 1
	r.orders[o.ID().String()] = m
	o.SetVersion(m.Version)
	return nil
}

func (r *MemoryOrderRepository) FindByID(ctx context.Context, id shared.OrderID) (*order.Order, error) {
	r.mu.RLock()
	m, ok := r.orders[id.String()]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %s", order.ErrOrderNotFound, id)
	}
	return order.Restore(m)
}

// MemoryCustomerStore is the in-memory auth.CustomerStore.
type MemoryCustomerStore struct {
	mu      sync.RWMutex
	byID    map[string]auth.Customer
	byEmail map[string]string
}

func NewMemoryCustomerStore() *MemoryCustomerStore {
	return &MemoryCustomerStore{
		byID:    make(map[string]auth.Customer),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryCustomerStore) Create(ctx context.Context, c auth.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[c.Email]; ok {
		return auth.ErrCustomerExists
	}
	s.byID[c.ID] = c
	s.byEmail[c.Email] = c.ID
	return nil
}

func (s *MemoryCustomerStore) FindByEmail(ctx context.Context, email string) (auth.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return auth.Customer{}, auth.ErrCustomerNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryCustomerStore) FindByID(ctx context.Context, id string) (auth.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return auth.Customer{}, auth.ErrCustomerNotFound
	}
	return c, nil
}
