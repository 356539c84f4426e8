// Package payments is the Payments bounded context. It knows nothing about
// the Orders domain model; it consumes order.placed integration messages and
// answers with payment.approved or payment.denied.
package payments

import (
	"context"
	"fmt"

	"github.com/example/order-fulfillment/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// fraudThreshold is the amount above which payments are denied outright.
var fraudThreshold = decimal.NewFromInt(1000)

// Result is the outcome of processing one payment request. Exactly one of
// the approved/denied shapes applies: PaymentID when approved, Reason when
// denied.
type Result struct {
	Approved  bool
	PaymentID string
	Reason    string
}

// Request is a coerced payment request built from an order.placed payload.
type Request struct {
	OrderID  string
	Amount   float64
	Currency string
}

// Service processes payment requests. Stand-in for a real payment provider:
// the only rule is a fraud ceiling on the charged amount.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) ProcessPayment(ctx context.Context, req Request) (Result, error) {
	if req.OrderID == "" {
		return Result{}, fmt.Errorf("%w: orderId is required", shared.ErrValidation)
	}
	amount, err := shared.NewMoneyFromFloat(req.Amount, req.Currency)
	if err != nil {
		return Result{}, err
	}

	if amount.Amount().GreaterThan(fraudThreshold) {
		return Result{Approved: false, Reason: "Fraud check failed"}, nil
	}

	return Result{Approved: true, PaymentID: "PAY-" + req.OrderID}, nil
}
