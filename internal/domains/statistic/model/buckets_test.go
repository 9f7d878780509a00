package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     string
	}{
		{"negative", -1, StockOutOfStock},
		{"zero", 0, StockOutOfStock},
		{"one", 1, StockLow},
		{"boundary low", 5, StockLow},
		{"six", 6, StockAdequate},
		{"boundary adequate", 20, StockAdequate},
		{"twenty one", 21, StockAmple},
		{"large", 1000, StockAmple},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StockStatus(tt.quantity))
		})
	}
}

func TestMonthsOfSupply(t *testing.T) {
	t.Run("no velocity yields nil", func(t *testing.T) {
		assert.Nil(t, MonthsOfSupply(10, 0))
	})

	t.Run("divides quantity by velocity", func(t *testing.T) {
		mos := MonthsOfSupply(10, 40)
		require.NotNil(t, mos)
		assert.True(t, mos.Equal(decimal.NewFromFloat(0.25)), "got %s", mos)
	})

	t.Run("rounds to two places", func(t *testing.T) {
		mos := MonthsOfSupply(10, 3)
		require.NotNil(t, mos)
		assert.True(t, mos.Equal(decimal.NewFromFloat(3.33)), "got %s", mos)
	})
}

func TestWarningLevel(t *testing.T) {
	mos := func(f float64) *decimal.Decimal {
		d := decimal.NewFromFloat(f)
		return &d
	}

	tests := []struct {
		name     string
		quantity int
		mos      *decimal.Decimal
		want     string
	}{
		{"empty shelf is critical even without velocity", 0, nil, WarningCritical},
		{"empty shelf is critical with velocity", 0, mos(0.1), WarningCritical},
		{"no velocity lands in the lowest bucket", 7, nil, WarningLow},
		{"half month boundary", 4, mos(0.5), WarningHigh},
		{"under half month", 2, mos(0.2), WarningHigh},
		{"one month boundary", 8, mos(1), WarningMedium},
		{"over one month", 30, mos(3), WarningLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WarningLevel(tt.quantity, tt.mos))
		})
	}
}

func TestFormatMonthsOfSupply(t *testing.T) {
	t.Run("no velocity displays as ample", func(t *testing.T) {
		assert.Equal(t, SupplyAmple, FormatMonthsOfSupply(MonthsOfSupply(7, 0)))
	})

	t.Run("finite supply renders the figure", func(t *testing.T) {
		mos := decimal.NewFromFloat(0.25)
		assert.Equal(t, "0.25", FormatMonthsOfSupply(&mos))
	})
}
