package models

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// RevenueVsBudgetResult compares USD revenue sums between the actuals and
// budget tables for one period filter. VariancePct is exactly 0 when the
// budget sum is zero; the division never runs in that case.
type RevenueVsBudgetResult struct {
	Actual      decimal.Decimal `json:"actual"`
	Budget      decimal.Decimal `json:"budget"`
	Variance    decimal.Decimal `json:"variance"`
	VariancePct float64         `json:"variance_pct"`
}

// MarginTrendResult carries per-period gross margin percentages, ordered
// oldest to newest, plus their arithmetic mean. All slices are empty and
// AvgMargin is 0 when the actuals table has no periods.
type MarginTrendResult struct {
	Periods   []Period  `json:"months"`
	Margins   []float64 `json:"margins"`
	AvgMargin float64   `json:"avg_margin"`
}

// CategoryTotal is one operating expense category with its USD sum.
type CategoryTotal struct {
	Category  string          `json:"category"`
	AmountUSD decimal.Decimal `json:"amount_usd"`
}

// OpexBreakdownResult groups operating expense spend by full category label.
// Totals are sorted by label so iteration order is deterministic.
type OpexBreakdownResult struct {
	Totals []CategoryTotal
}

// ByCategory returns the totals as a category-to-amount map.
func (r OpexBreakdownResult) ByCategory() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(r.Totals))
	for _, ct := range r.Totals {
		m[ct.Category] = ct.AmountUSD
	}
	return m
}

// MarshalJSON renders the breakdown as a JSON object mapping category to
// amount, preserving the sorted order of Totals.
func (r OpexBreakdownResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ct := range r.Totals {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ct.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(ct.AmountUSD)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EbitdaResult is the fixed whole-table aggregation
// revenue - COGS - operating expenses. The components are retained for
// display; Ebitda is the headline number.
type EbitdaResult struct {
	Revenue decimal.Decimal `json:"revenue"`
	COGS    decimal.Decimal `json:"cogs"`
	Opex    decimal.Decimal `json:"opex"`
	Ebitda  decimal.Decimal `json:"ebitda"`
}

// CashRunwayResult reports the latest cash balance, the trailing monthly
// burn and the months of runway left. RunwayMonths is +Inf when burn is
// zero or negative (cash flat or growing); all three fields are zero when
// fewer than four cash periods exist.
type CashRunwayResult struct {
	CashBalance  decimal.Decimal `json:"cash_balance"`
	MonthlyBurn  decimal.Decimal `json:"monthly_burn"`
	RunwayMonths float64         `json:"runway_months"`
}

// Unbounded reports whether the runway is the infinite sentinel.
func (r CashRunwayResult) Unbounded() bool {
	return math.IsInf(r.RunwayMonths, 1)
}

// MarshalJSON substitutes the string "unlimited" for an infinite runway,
// since JSON numbers cannot represent +Inf.
func (r CashRunwayResult) MarshalJSON() ([]byte, error) {
	type wire struct {
		CashBalance  decimal.Decimal `json:"cash_balance"`
		MonthlyBurn  decimal.Decimal `json:"monthly_burn"`
		RunwayMonths any             `json:"runway_months"`
	}
	w := wire{CashBalance: r.CashBalance, MonthlyBurn: r.MonthlyBurn}
	if r.Unbounded() {
		w.RunwayMonths = "unlimited"
	} else {
		w.RunwayMonths = r.RunwayMonths
	}
	return json.Marshal(w)
}
