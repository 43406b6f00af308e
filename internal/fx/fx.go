// Package fx converts ledger amounts to USD using per-period exchange rates.
package fx

import (
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/cfo-copilot/internal/models"
)

type rateKey struct {
	period   models.Period
	currency string
}

// Table is an immutable lookup of (period, currency) to USD conversion
// rates.
type Table struct {
	rates map[rateKey]decimal.Decimal
}

// NewTable builds a rate table from loaded fx rows.
func NewTable(rates []models.FxRate) *Table {
	table := &Table{rates: make(map[rateKey]decimal.Decimal, len(rates))}
	for _, rate := range rates {
		key := rateKey{period: rate.Period, currency: strings.ToUpper(rate.Currency)}
		table.rates[key] = rate.RateToUSD
	}
	return table
}

// Rate returns the USD conversion rate for a currency in a period.
func (t *Table) Rate(period models.Period, currency string) (decimal.Decimal, bool) {
	rate, ok := t.rates[rateKey{period: period, currency: strings.ToUpper(currency)}]
	return rate, ok
}

// Normalize attaches USD values to ledger rows, preserving their order.
// Rows without a matching rate keep their amount unchanged under the
// identity rate, reported by Converted being false.
func (t *Table) Normalize(rows []models.LedgerRow) []models.NormalizedRow {
	normalized := make([]models.NormalizedRow, len(rows))
	for i, row := range rows {
		rate, ok := t.Rate(row.Period, row.Currency)
		if !ok {
			rate = decimal.NewFromInt(1)
		}
		normalized[i] = models.NormalizedRow{
			LedgerRow:   row,
			AmountUSD:   row.Amount.Mul(rate),
			RateApplied: rate,
			Converted:   ok,
		}
	}
	return normalized
}

// TotalUSD sums the USD value of normalized rows.
func TotalUSD(rows []models.NormalizedRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.AmountUSD)
	}
	return total
}
