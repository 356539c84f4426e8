package shared

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyID     = fmt.Errorf("%w: id cannot be empty", ErrValidation)
	ErrInvalidUUID = fmt.Errorf("%w: id must be an RFC 4122 UUID", ErrValidation)
)

// Identifiers are small comparable value types built from two normalization
// strategies: plain opaque strings (trimmed, non-empty) and UUIDs (validated,
// lowercased, generatable). Concrete types compose a strategy instead of
// inheriting from a base id.

func normalizeStringID(kind, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w (%s)", ErrEmptyID, kind)
	}
	return trimmed, nil
}

func normalizeUUID(kind, raw string) (string, error) {
	trimmed, err := normalizeStringID(kind, raw)
	if err != nil {
		return "", err
	}
	// uuid.Parse also accepts urn: and braced forms; only the canonical
	// 8-4-4-4-12 string is a valid identifier here.
	if len(trimmed) != 36 {
		return "", fmt.Errorf("%w (%s): %q", ErrInvalidUUID, kind, raw)
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w (%s): %q", ErrInvalidUUID, kind, raw)
	}
	return id.String(), nil
}

// ProductID is an opaque cross-context product reference.
type ProductID struct{ value string }

func NewProductID(raw string) (ProductID, error) {
	v, err := normalizeStringID("ProductID", raw)
	if err != nil {
		return ProductID{}, err
	}
	return ProductID{value: v}, nil
}

func (id ProductID) String() string { return id.value }

// CustomerID is an opaque cross-context customer reference.
type CustomerID struct{ value string }

func NewCustomerID(raw string) (CustomerID, error) {
	v, err := normalizeStringID("CustomerID", raw)
	if err != nil {
		return CustomerID{}, err
	}
	return CustomerID{value: v}, nil
}

func (id CustomerID) String() string { return id.value }

// CartID identifies a shopping cart aggregate.
type CartID struct{ value string }

func NewCartID() CartID {
	return CartID{value: uuid.New().String()}
}

func ParseCartID(raw string) (CartID, error) {
	v, err := normalizeUUID("CartID", raw)
	if err != nil {
		return CartID{}, err
	}
	return CartID{value: v}, nil
}

func (id CartID) String() string { return id.value }

// OrderID identifies an order aggregate.
type OrderID struct{ value string }

func NewOrderID() OrderID {
	return OrderID{value: uuid.New().String()}
}

func ParseOrderID(raw string) (OrderID, error) {
	v, err := normalizeUUID("OrderID", raw)
	if err != nil {
		return OrderID{}, err
	}
	return OrderID{value: v}, nil
}

func (id OrderID) String() string { return id.value }
