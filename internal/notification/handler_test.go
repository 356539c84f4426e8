package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/example/order-fulfillment/internal/contract"
	"github.com/example/order-fulfillment/internal/domain/order"
	"github.com/example/order-fulfillment/internal/domain/shared"
	"github.com/example/order-fulfillment/internal/email"
	"github.com/example/order-fulfillment/internal/infrastructure/store"
	"github.com/example/order-fulfillment/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	emails map[string]string
}

func (f *fakeResolver) CustomerEmail(ctx context.Context, customerID string) (string, error) {
	addr, ok := f.emails[customerID]
	if !ok {
		return "", errors.New("customer not found")
	}
	return addr, nil
}

type fakeSender struct {
	sent []sentReceipt
	err  error
}

type sentReceipt struct {
	to      string
	receipt email.Receipt
}

func (f *fakeSender) SendPaymentReceipt(to string, receipt email.Receipt) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentReceipt{to: to, receipt: receipt})
	return nil
}

func savedOrder(t *testing.T, repo *store.MemoryOrderRepository) *order.Order {
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

func TestNotifier_SendsReceiptOnApproval(t *testing.T) {
	bus := messaging.NewMemoryBus()
	repo := store.NewMemoryOrderRepository()
	o := savedOrder(t, repo)
	resolver := &fakeResolver{emails: map[string]string{"customer-1": "alice@example.com"}}
	sender := &fakeSender{}

	notifier := NewNotifier(bus, repo, resolver, sender)
	require.NoError(t, notifier.Start())

	err := bus.Publish(context.Background(), contract.TopicPaymentApproved, contract.PaymentApprovedPayload{
		OrderID:   o.ID().String(),
		PaymentID: "PAY-" + o.ID().String(),
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "alice@example.com", sender.sent[0].to)
	assert.Equal(t, o.ID().String(), sender.sent[0].receipt.OrderID)
	assert.Equal(t, "PAY-"+o.ID().String(), sender.sent[0].receipt.PaymentID)
	assert.Equal(t, "49.98 USD", sender.sent[0].receipt.Total)
	require.Len(t, sender.sent[0].receipt.Items, 1)
	assert.Equal(t, "COFFEE-COL-001", sender.sent[0].receipt.Items[0].ProductID)
	assert.Equal(t, 2, sender.sent[0].receipt.Items[0].Quantity)
}

func TestNotifier_UnknownCustomerSkipped(t *testing.T) {
	bus := messaging.NewMemoryBus()
	repo := store.NewMemoryOrderRepository()
	o := savedOrder(t, repo)
	sender := &fakeSender{}

	notifier := NewNotifier(bus, repo, &fakeResolver{emails: map[string]string{}}, sender)
	require.NoError(t, notifier.Start())

	// No address on file is not a delivery failure; the message is consumed.
	err := bus.Publish(context.Background(), contract.TopicPaymentApproved, contract.PaymentApprovedPayload{
		OrderID:   o.ID().String(),
		PaymentID: "PAY-1",
	})

	assert.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestNotifier_MissingOrderFails(t *testing.T) {
	bus := messaging.NewMemoryBus()
	repo := store.NewMemoryOrderRepository()
	sender := &fakeSender{}

	notifier := NewNotifier(bus, repo, &fakeResolver{emails: map[string]string{}}, sender)
	require.NoError(t, notifier.Start())

	err := bus.Publish(context.Background(), contract.TopicPaymentApproved, contract.PaymentApprovedPayload{
		OrderID:   "550e8400-e29b-41d4-a716-446655440000",
		PaymentID: "PAY-1",
	})

	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.Empty(t, sender.sent)
}

func TestNotifier_SendFailurePropagates(t *testing.T) {
	bus := messaging.NewMemoryBus()
	repo := store.NewMemoryOrderRepository()
	o := savedOrder(t, repo)
	sendErr := errors.New("smtp unreachable")
	sender := &fakeSender{err: sendErr}

	notifier := NewNotifier(bus, repo, &fakeResolver{emails: map[string]string{"customer-1": "alice@example.com"}}, sender)
	require.NoError(t, notifier.Start())

	err := bus.Publish(context.Background(), contract.TopicPaymentApproved, contract.PaymentApprovedPayload{
		OrderID:   o.ID().String(),
		PaymentID: "PAY-1",
	})

	assert.ErrorIs(t, err, sendErr)
}
