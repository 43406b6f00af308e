package fx

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/cfo-copilot/internal/models"
)

func june() models.Period { return models.NewPeriod(2025, time.June) }
func may() models.Period  { return models.NewPeriod(2025, time.May) }

func testTable() *Table {
	return NewTable([]models.FxRate{
		{Period: june(), Currency: "EUR", RateToUSD: decimal.RequireFromString("1.08")},
		{Period: june(), Currency: "CHF", RateToUSD: decimal.RequireFromString("1.12")},
		{Period: may(), Currency: "EUR", RateToUSD: decimal.RequireFromString("1.07")},
	})
}

func TestTableRate(t *testing.T) {
	table := testTable()

	tests := []struct {
		name     string
		period   models.Period
		currency string
		want     string
		found    bool
	}{
		{name: "exact match", period: june(), currency: "EUR", want: "1.08", found: true},
		{name: "lowercase currency", period: june(), currency: "eur", want: "1.08", found: true},
		{name: "earlier period", period: may(), currency: "EUR", want: "1.07", found: true},
		{name: "unknown currency", period: june(), currency: "GBP", found: false},
		{name: "unknown period", period: models.NewPeriod(2024, time.June), currency: "EUR", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, ok := table.Rate(tt.period, tt.currency)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.True(t, rate.Equal(decimal.RequireFromString(tt.want)),
					"expected %s, got %s", tt.want, rate)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	table := testTable()
	rows := []models.LedgerRow{
		{Period: june(), AccountCategory: "Revenue", Currency: "USD", Amount: decimal.RequireFromString("100000")},
		{Period: june(), AccountCategory: "Revenue", Currency: "EUR", Amount: decimal.RequireFromString("10000")},
		{Period: june(), AccountCategory: "Opex:Marketing", Currency: "GBP", Amount: decimal.RequireFromString("5000")},
		{Period: may(), AccountCategory: "COGS", Currency: "EUR", Amount: decimal.RequireFromString("-2000")},
	}

	normalized := table.Normalize(rows)
	require.Len(t, normalized, len(rows))

	// USD has no table entry and falls back to the identity rate.
	assert.False(t, normalized[0].Converted)
	assert.True(t, normalized[0].AmountUSD.Equal(decimal.RequireFromString("100000")))
	assert.True(t, normalized[0].RateApplied.Equal(decimal.NewFromInt(1)))

	assert.True(t, normalized[1].Converted)
	assert.True(t, normalized[1].AmountUSD.Equal(decimal.RequireFromString("10800")))
	assert.True(t, normalized[1].RateApplied.Equal(decimal.RequireFromString("1.08")))

	// GBP has no rate either; the amount passes through unchanged.
	assert.False(t, normalized[2].Converted)
	assert.True(t, normalized[2].AmountUSD.Equal(decimal.RequireFromString("5000")))

	// Negative amounts convert like any other and the rate follows the
	// row's own period.
	assert.True(t, normalized[3].Converted)
	assert.True(t, normalized[3].AmountUSD.Equal(decimal.RequireFromString("-2140")))

	// Input order is preserved.
	assert.Equal(t, "Revenue", normalized[0].AccountCategory)
	assert.Equal(t, "Opex:Marketing", normalized[2].AccountCategory)
	assert.Equal(t, "COGS", normalized[3].AccountCategory)
}

func TestNormalizeEmpty(t *testing.T) {
	normalized := testTable().Normalize(nil)
	assert.Empty(t, normalized)
	assert.True(t, TotalUSD(normalized).IsZero())
}

func TestTotalUSD(t *testing.T) {
	table := testTable()
	rows := []models.LedgerRow{
		{Period: june(), Currency: "USD", Amount: decimal.RequireFromString("100")},
		{Period: june(), Currency: "EUR", Amount: decimal.RequireFromString("100")},
		{Period: june(), Currency: "USD", Amount: decimal.RequireFromString("-50")},
	}

	total := TotalUSD(table.Normalize(rows))
	assert.True(t, total.Equal(decimal.RequireFromString("158")), "expected 158, got %s", total)
}
