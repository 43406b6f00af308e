// Package intent classifies free-text questions into one of the
// supported financial intents and extracts the period the question
// refers to. Classification is keyword-based: an ordered rule list is
// evaluated top to bottom and the first rule whose keywords all appear
// in the lowercased question wins. Matching is plain substring search,
// so "margins" satisfies "margin" and "maybe" satisfies "may"; the rule
// order is part of the contract and resolves overlaps such as "revenue
// vs budget breakdown".
package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"fjacquet/cfo-copilot/internal/models"
)

// rule is one classification step: the question must contain every
// keyword in all and at least one keyword in any. An empty list is
// vacuously satisfied.
type rule struct {
	intent models.Intent
	all    []string
	any    []string
}

// rules is evaluated in order; earlier rules shadow later ones.
var rules = []rule{
	{intent: models.IntentRevenueVsBudget, all: []string{"revenue"}, any: []string{"budget", "vs"}},
	{intent: models.IntentGrossMargin, any: []string{"margin", "gross"}},
	{intent: models.IntentOpexBreakdown, any: []string{"opex", "breakdown"}},
	{intent: models.IntentCashRunway, any: []string{"cash", "runway", "burn"}},
	{intent: models.IntentEbitda, any: []string{"ebitda"}},
}

// monthTokens maps month words to month numbers, full name before the
// abbreviation so "january" is consumed as one token, not as "jan"
// inside a longer word plus leftovers. First matching token wins.
var monthTokens = []struct {
	token string
	month time.Month
}{
	{"january", time.January}, {"jan", time.January},
	{"february", time.February}, {"feb", time.February},
	{"march", time.March}, {"mar", time.March},
	{"april", time.April}, {"apr", time.April},
	{"may", time.May},
	{"june", time.June}, {"jun", time.June},
	{"july", time.July}, {"jul", time.July},
	{"august", time.August}, {"aug", time.August},
	{"september", time.September}, {"sep", time.September},
	{"october", time.October}, {"oct", time.October},
	{"november", time.November}, {"nov", time.November},
	{"december", time.December}, {"dec", time.December},
}

var yearPattern = regexp.MustCompile(`20\d{2}`)

// Classify returns the intent of a question. Questions matching no rule
// are IntentUnknown; classification itself cannot fail.
func Classify(question string) models.Intent {
	lowered := strings.ToLower(question)
	for _, r := range rules {
		if matches(lowered, r) {
			return r.intent
		}
	}
	return models.IntentUnknown
}

func matches(lowered string, r rule) bool {
	for _, keyword := range r.all {
		if !strings.Contains(lowered, keyword) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, keyword := range r.any {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// ExtractPeriod pulls a month and year out of a question. The month
// comes from the first month token found; the year from the first
// four-digit 20xx match, falling back to defaultYear. A question with
// neither yields a year-only filter for defaultYear.
func ExtractPeriod(question string, defaultYear int) models.PeriodFilter {
	lowered := strings.ToLower(question)

	filter := models.PeriodFilter{Year: defaultYear}
	for _, mt := range monthTokens {
		if strings.Contains(lowered, mt.token) {
			filter.Month = mt.month
			break
		}
	}

	if match := yearPattern.FindString(question); match != "" {
		year, _ := strconv.Atoi(match)
		filter.Year = year
	}

	return filter
}
