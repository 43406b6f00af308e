package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Account category labels used by the aggregations. Operating expense rows
// carry a colon-namespaced label such as "Opex:Marketing".
const (
	CategoryRevenue = "Revenue"
	CategoryCOGS    = "COGS"
	OpexPrefix      = "Opex:"
)

// IsOpexCategory reports whether a category label belongs to the operating
// expense namespace.
func IsOpexCategory(category string) bool {
	return strings.HasPrefix(category, OpexPrefix)
}

// LedgerRow is one line of the actuals or budget table: an amount booked to
// an account category in a period, denominated in the row's own currency.
// Amount may be negative (contra accounts).
type LedgerRow struct {
	Period          Period
	AccountCategory string
	Currency        string
	Amount          decimal.Decimal
}

// FxRate converts one currency to USD for one period. RateToUSD is always
// positive; the absence of a rate for a (period, currency) pair means the
// amount is treated as already USD-denominated.
type FxRate struct {
	Period    Period
	Currency  string
	RateToUSD decimal.Decimal
}

// CashRow holds the closing cash balance of one period, already in USD.
type CashRow struct {
	Period  Period
	CashUSD decimal.Decimal
}

// NormalizedRow is a LedgerRow with its USD value attached. Converted is
// false when no FX rate matched and the identity rate was applied, so
// consumers can tell a real conversion from the 1.0 fallback.
// NormalizedRows are recomputed per query and never cached.
type NormalizedRow struct {
	LedgerRow
	AmountUSD   decimal.Decimal
	RateApplied decimal.Decimal
	Converted   bool
}
