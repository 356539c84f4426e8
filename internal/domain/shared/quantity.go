package shared

import "fmt"

const (
	MinQuantity = 1
	MaxQuantity = 10
)

var ErrQuantityOutOfRange = fmt.Errorf("%w: quantity must be an integer between %d and %d",
	ErrValidation, MinQuantity, MaxQuantity)

// Quantity is a bounded line quantity. The bound applies to every value,
// including sums produced by Add, so consolidating cart lines re-validates.
type Quantity struct {
	value int
}

func NewQuantity(value int) (Quantity, error) {
	if value < MinQuantity || value > MaxQuantity {
		return Quantity{}, fmt.Errorf("%w: got %d", ErrQuantityOutOfRange, value)
	}
	return Quantity{value: value}, nil
}

func (q Quantity) Value() int { return q.value }

func (q Quantity) Add(other Quantity) (Quantity, error) {
	return NewQuantity(q.value + other.value)
}

func (q Quantity) Equals(other Quantity) bool { return q.value == other.value }
