package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductID_TrimsWhitespace(t *testing.T) {
	id, err := NewProductID("  COFFEE-COL-001  ")

	require.NoError(t, err)
	assert.Equal(t, "COFFEE-COL-001", id.String())
}

func TestNewProductID_Empty(t *testing.T) {
	_, err := NewProductID("   ")

	assert.ErrorIs(t, err, ErrEmptyID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewCustomerID_Empty(t *testing.T) {
	_, err := NewCustomerID("")

	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestNewCartID_GeneratesUnique(t *testing.T) {
	a := NewCartID()
	b := NewCartID()

	assert.NotEqual(t, a.String(), b.String())

	// Generated ids round-trip through Parse
	parsed, err := ParseCartID(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestParseOrderID_CanonicalOnly(t *testing.T) {
	canonical := "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"canonical", canonical, false},
		{"uppercase normalized", strings.ToUpper(canonical), false},
		{"surrounding whitespace", "  " + canonical + "  ", false},
		{"braced", "{" + canonical + "}", true},
		{"urn form", "urn:uuid:" + canonical, true},
		{"no hyphens", strings.ReplaceAll(canonical, "-", ""), true},
		{"not a uuid", "order-1", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseOrderID(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				require.NoError(t, err)
				assert.Equal(t, canonical, id.String())
			}
		})
	}
}
