package shared

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount float64, currency string) Money {
	t.Helper()
	m, err := NewMoneyFromFloat(amount, currency)
	require.NoError(t, err)
	return m
}

// ============================================
// Construction Tests
// ============================================

func TestNewMoney_RoundsToTwoDecimals(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(10.005), "USD")

	require.NoError(t, err)
	assert.Equal(t, "10.01 USD", m.String())
}

func TestNewMoney_RejectsNegativeAmount(t *testing.T) {
	_, err := NewMoneyFromFloat(-1.00, "USD")

	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewMoney_CurrencyValidation(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		wantErr  bool
	}{
		{"valid USD", "USD", false},
		{"valid EUR", "EUR", false},
		{"lowercase", "usd", true},
		{"too short", "US", true},
		{"too long", "USDX", true},
		{"empty", "", true},
		{"digits", "U5D", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMoneyFromFloat(1.00, tt.currency)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCurrency)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("24.99", "USD")

	require.NoError(t, err)
	assert.Equal(t, "24.99 USD", m.String())

	_, err = NewMoneyFromString("not-a-number", "USD")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestZeroMoney(t *testing.T) {
	m, err := ZeroMoney("USD")

	require.NoError(t, err)
	assert.True(t, m.IsZero())
	assert.Equal(t, "USD", m.Currency())
}

// ============================================
// Arithmetic Tests
// ============================================

func TestMoney_Add(t *testing.T) {
	a := mustMoney(t, 10.50, "USD")
	b := mustMoney(t, 4.49, "USD")

	sum, err := a.Add(b)

	require.NoError(t, err)
	assert.Equal(t, "14.99 USD", sum.String())
	// Operands are unchanged
	assert.Equal(t, "10.50 USD", a.String())
}

func TestMoney_Add_CurrencyMismatch(t *testing.T) {
	a := mustMoney(t, 10.00, "USD")
	b := mustMoney(t, 10.00, "EUR")

	_, err := a.Add(b)

	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoney_Subtract(t *testing.T) {
	a := mustMoney(t, 60.00, "USD")
	b := mustMoney(t, 5.00, "USD")

	diff, err := a.Subtract(b)

	require.NoError(t, err)
	assert.Equal(t, "55.00 USD", diff.String())
}

func TestMoney_Subtract_NegativeResult(t *testing.T) {
	a := mustMoney(t, 5.00, "USD")
	b := mustMoney(t, 10.00, "USD")

	_, err := a.Subtract(b)

	assert.ErrorIs(t, err, ErrNegativeResult)
}

func TestMoney_Multiply(t *testing.T) {
	price := mustMoney(t, 24.99, "USD")

	total, err := price.Multiply(decimal.NewFromInt(2))

	require.NoError(t, err)
	assert.Equal(t, "49.98 USD", total.String())
}

func TestMoney_Multiply_NegativeFactor(t *testing.T) {
	price := mustMoney(t, 10.00, "USD")

	_, err := price.Multiply(decimal.NewFromInt(-1))

	assert.ErrorIs(t, err, ErrNegativeFactor)
}

func TestMoney_Equals(t *testing.T) {
	a := mustMoney(t, 10.00, "USD")
	b := mustMoney(t, 10.00, "USD")
	c := mustMoney(t, 10.00, "EUR")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
