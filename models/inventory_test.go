package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMaterialApply(t *testing.T) {
	t.Parallel()

	m := Material{Quantity: d("5"), MinimumStock: d("2"), Unit: "bottle"}

	tests := []struct {
		name string
		typ  MovementType
		qty  string
		want string
		err  error
	}{
		{"in adds", MovementIn, "3", "8", nil},
		{"out subtracts", MovementOut, "1.5", "3.5", nil},
		{"out to zero", MovementOut, "5", "0", nil},
		{"out below zero", MovementOut, "5.01", "", ErrInsufficientStock},
		{"adjust sets", MovementAdjust, "12", "12", nil},
		{"adjust to zero", MovementAdjust, "0", "0", nil},
		{"zero in", MovementIn, "0", "", ErrInvalidMovement},
		{"negative", MovementIn, "-1", "", ErrInvalidMovement},
		{"unknown type", MovementType("lost"), "1", "", ErrInvalidMovement},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := m.Apply(tt.typ, d(tt.qty))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestMaterialLowStock(t *testing.T) {
	t.Parallel()

	assert.True(t, Material{Quantity: d("2"), MinimumStock: d("2")}.IsLowStock())
	assert.True(t, Material{Quantity: d("1"), MinimumStock: d("2")}.IsLowStock())
	assert.False(t, Material{Quantity: d("2.01"), MinimumStock: d("2")}.IsLowStock())

	m := Material{Quantity: d("0"), MinimumStock: d("1")}
	require.NoError(t, m.AfterFind(nil))
	assert.True(t, m.LowStock)
}
