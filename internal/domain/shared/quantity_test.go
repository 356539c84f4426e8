package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantity_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"minimum", 1, false},
		{"maximum", 10, false},
		{"middle", 5, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"over maximum", 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuantity(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrQuantityOutOfRange)
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.value, q.Value())
			}
		})
	}
}

func TestQuantity_Add(t *testing.T) {
	a, err := NewQuantity(4)
	require.NoError(t, err)
	b, err := NewQuantity(3)
	require.NoError(t, err)

	sum, err := a.Add(b)

	require.NoError(t, err)
	assert.Equal(t, 7, sum.Value())
}

func TestQuantity_Add_ExceedsMaximum(t *testing.T) {
	a, err := NewQuantity(8)
	require.NoError(t, err)
	b, err := NewQuantity(3)
	require.NoError(t, err)

	_, err = a.Add(b)

	assert.ErrorIs(t, err, ErrQuantityOutOfRange)
}
