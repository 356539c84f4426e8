package store

import (
	"context"
	"testing"

	"github.com/example/order-fulfillment/internal/auth"
	"github.com/example/order-fulfillment/internal/domain/cart"
	"github.com/example/order-fulfillment/internal/domain/order"
	"github.com/example/order-fulfillment/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSavedCart(t *testing.T, repo *MemoryCartRepository, customer string) *cart.ShoppingCart {
	t.Helper()
	customerID, err := shared.NewCustomerID(customer)
	require.NoError(t, err)
	c := cart.Create(customerID)

	pid, err := shared.NewProductID("COFFEE-COL-001")
	require.NoError(t, err)
	qty, err := shared.NewQuantity(2)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(pid, qty))

	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func newSavedOrder(t *testing.T, repo *MemoryOrderRepository) *order.Order {
	t.Helper()
	pid, err := shared.NewProductID("COFFEE-COL-001")
	require.NoError(t, err)
	qty, err := shared.NewQuantity(2)
	require.NoError(t, err)
	price, err := shared.NewMoneyFromFloat(24.99, "USD")
	require.NoError(t, err)
	zero, err := shared.ZeroMoney("USD")
	require.NoError(t, err)
	item, err := order.NewItem(pid, qty, price, zero)
	require.NoError(t, err)

	customerID, err := shared.NewCustomerID("customer-1")
	require.NoError(t, err)
	address := order.ShippingAddress{
		Street: "123 Main St", City: "Springfield",
		StateOrProvince: "IL", PostalCode: "62701", Country: "US",
	}
	o, err := order.Create(shared.NewCartID(), customerID, []order.Item{item}, address, zero)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), o))
	return o
}

// ============================================
// MemoryCartRepository Tests
// ============================================

func TestMemoryCartRepository_SaveAndFind(t *testing.T) {
	repo := NewMemoryCartRepository()
	c := newSavedCart(t, repo, "customer-1")
	assert.Equal(t, 1, c.Version())

	found, err := repo.FindByID(context.Background(), c.ID())

	require.NoError(t, err)
	assert.Equal(t, c.ID(), found.ID())
	assert.Equal(t, c.Items(), found.Items())
	assert.Equal(t, 1, found.Version())
}

func TestMemoryCartRepository_FindByID_NotFound(t *testing.T) {
	repo := NewMemoryCartRepository()

	_, err := repo.FindByID(context.Background(), shared.NewCartID())

	assert.ErrorIs(t, err, cart.ErrCartNotFound)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMemoryCartRepository_VersionConflict(t *testing.T) {
	repo := NewMemoryCartRepository()
	c := newSavedCart(t, repo, "customer-1")

	// Two readers load version 1; the slower writer loses.
	first, err := repo.FindByID(context.Background(), c.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(context.Background(), c.ID())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), first))
	err = repo.Save(context.Background(), second)

	assert.ErrorIs(t, err, cart.ErrVersionConflict)
	assert.ErrorIs(t, err, shared.ErrStateTransition)
}

func TestMemoryCartRepository_StaleNewAggregateConflicts(t *testing.T) {
	repo := NewMemoryCartRepository()
	c := newSavedCart(t, repo, "customer-1")
	require.NoError(t, repo.Delete(context.Background(), c.ID()))

	// The aggregate still carries version 1 but the row is gone.
	err := repo.Save(context.Background(), c)

	assert.ErrorIs(t, err, cart.ErrVersionConflict)
}

func TestMemoryCartRepository_FindByCustomerID(t *testing.T) {
	repo := NewMemoryCartRepository()
	newSavedCart(t, repo, "customer-1")
	newSavedCart(t, repo, "customer-1")
	newSavedCart(t, repo, "customer-2")

	carts, err := repo.FindByCustomerID(context.Background(), mustCustomerID(t, "customer-1"))

	require.NoError(t, err)
	assert.Len(t, carts, 2)
}

func TestMemoryCartRepository_Delete(t *testing.T) {
	repo := NewMemoryCartRepository()
	c := newSavedCart(t, repo, "customer-1")

	require.NoError(t, repo.Delete(context.Background(), c.ID()))

	_, err := repo.FindByID(context.Background(), c.ID())
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func mustCustomerID(t *testing.T, raw string) shared.CustomerID {
	t.Helper()
	id, err := shared.NewCustomerID(raw)
	require.NoError(t, err)
	return id
}

// ============================================
// MemoryOrderRepository Tests
// ============================================

func TestMemoryOrderRepository_SaveAndFind(t *testing.T) {
	repo := NewMemoryOrderRepository()
	o := newSavedOrder(t, repo)

	found, err := repo.FindByID(context.Background(), o.ID())

	require.NoError(t, err)
	assert.Equal(t, o.ID(), found.ID())
	assert.True(t, o.TotalAmount().Equals(found.TotalAmount()))
	assert.Equal(t, 1, found.Version())
}

func TestMemoryOrderRepository_FindByID_NotFound(t *testing.T) {
	repo := NewMemoryOrderRepository()

	_, err := repo.FindByID(context.Background(), shared.NewOrderID())

	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestMemoryOrderRepository_VersionConflict(t *testing.T) {
	repo := NewMemoryOrderRepository()
	o := newSavedOrder(t, repo)

	first, err := repo.FindByID(context.Background(), o.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(context.Background(), o.ID())
	require.NoError(t, err)

	require.NoError(t, first.MarkAsPaid("PAY-1"))
	require.NoError(t, repo.Save(context.Background(), first))

	require.NoError(t, second.MarkAsPaid("PAY-2"))
	err = repo.Save(context.Background(), second)

	assert.ErrorIs(t, err, order.ErrVersionConflict)

	// The winning write is what persists
	saved, err := repo.FindByID(context.Background(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, "PAY-1", saved.PaymentID())
}

func TestMemoryOrderRepository_SaveDoesNotAliasCaller(t *testing.T) {
	repo := NewMemoryOrderRepository()
	o := newSavedOrder(t, repo)

	// Mutating the caller's aggregate after save leaves the stored copy alone.
	require.NoError(t, o.MarkAsPaid("PAY-local"))

	stored, err := repo.FindByID(context.Background(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.StatusAwaitingPayment, stored.Status())
}

// ============================================
// MemoryCustomerStore Tests
// ============================================

func TestMemoryCustomerStore(t *testing.T) {
	store := NewMemoryCustomerStore()
	customer := auth.Customer{ID: "c-1", Email: "alice@example.com", PasswordHash: "hash"}

	require.NoError(t, store.Create(context.Background(), customer))

	byEmail, err := store.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "c-1", byEmail.ID)

	byID, err := store.FindByID(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	err = store.Create(context.Background(), auth.Customer{ID: "c-2", Email: "alice@example.com"})
	assert.ErrorIs(t, err, auth.ErrCustomerExists)

	_, err = store.FindByEmail(context.Background(), "bob@example.com")
	assert.ErrorIs(t, err, auth.ErrCustomerNotFound)
}
