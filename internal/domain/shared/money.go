package shared

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount   = fmt.Errorf("%w: amount cannot be negative", ErrValidation)
	ErrInvalidCurrency  = fmt.Errorf("%w: currency must be a 3-letter ISO 4217 code", ErrValidation)
	ErrCurrencyMismatch = fmt.Errorf("%w: operands use different currencies", ErrValidation)
	ErrNegativeResult   = fmt.Errorf("%w: subtraction result cannot be negative", ErrValidation)
	ErrNegativeFactor   = fmt.Errorf("%w: cannot multiply by negative factor", ErrValidation)
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is an immutable amount in a single currency. Amounts are kept at two
// decimal places (half-up); every operation returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if !currencyPattern.MatchString(currency) {
		return Money{}, fmt.Errorf("%w: got %q", ErrInvalidCurrency, currency)
	}
	return Money{amount: amount.Round(2), currency: currency}, nil
}

func NewMoneyFromFloat(amount float64, currency string) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: malformed amount %q", ErrValidation, amount)
	}
	return NewMoney(d, currency)
}

// ZeroMoney returns 0.00 in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) Float64() float64        { return m.amount.InexactFloat64() }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

func (m Money) Subtract(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, ErrNegativeResult
	}
	return NewMoney(result, m.currency)
}

func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, ErrNegativeFactor
	}
	return NewMoney(m.amount.Mul(factor), m.currency)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

func (m Money) ensureSameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}
