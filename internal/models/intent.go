package models

// Intent identifies which financial question a piece of free text is asking.
// The string values are the wire-level tags carried in the envelope.
type Intent string

const (
	IntentRevenueVsBudget Intent = "revenue_vs_budget"
	IntentGrossMargin     Intent = "gross_margin"
	IntentOpexBreakdown   Intent = "opex_breakdown"
	IntentCashRunway      Intent = "cash_runway"
	IntentEbitda          Intent = "ebitda"

	// IntentUnknown marks a question none of the classification rules matched.
	IntentUnknown Intent = "unknown"

	// IntentError marks an envelope produced by the dispatcher's failure
	// containment rather than by a successful aggregation.
	IntentError Intent = "error"
)

// String returns the wire-level tag.
func (i Intent) String() string {
	return string(i)
}
