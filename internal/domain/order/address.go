package order

import (
	"fmt"
	"strings"

	"github.com/example/order-fulfillment/internal/domain/shared"
)

// ShippingAddress is a plain structured value attached to an order at creation
// and never changed afterwards. Line2 and DeliveryInstructions are optional.
type ShippingAddress struct {
	Street               string `json:"street"`
	Line2                string `json:"line2,omitempty"`
	City                 string `json:"city"`
	StateOrProvince      string `json:"state_or_province"`
	PostalCode           string `json:"postal_code"`
	Country              string `json:"country"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`
}

func NewShippingAddress(a ShippingAddress) (ShippingAddress, error) {
	required := []struct {
		field string
		value string
	}{
		{"street", a.Street},
		{"city", a.City},
		{"stateOrProvince", a.StateOrProvince},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return ShippingAddress{}, fmt.Errorf("%w: shipping address %s is required", shared.ErrValidation, r.field)
		}
	}
	return a, nil
}
