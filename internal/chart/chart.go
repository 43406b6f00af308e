// Package chart builds renderer-agnostic chart descriptors for query
// results. Builders are total: empty results yield charts that still
// carry their title and axis labels, just no points. Cash runway and
// EBITDA answers ship without a chart, so no builder exists for them.
package chart

import (
	"fjacquet/cfo-copilot/internal/models"
)

// RevenueVsBudget builds a grouped bar comparing the actual and budget
// revenue sums as two single-bar series.
func RevenueVsBudget(result models.RevenueVsBudgetResult) *models.Chart {
	return &models.Chart{
		Kind:   models.ChartGroupedBar,
		Title:  "Revenue vs Budget",
		XLabel: "Category",
		YLabel: "Amount (USD)",
		Series: []models.Series{
			{
				Name:   "Actual",
				Labels: []string{"Revenue"},
				Values: []float64{result.Actual.InexactFloat64()},
			},
			{
				Name:   "Budget",
				Labels: []string{"Revenue"},
				Values: []float64{result.Budget.InexactFloat64()},
			},
		},
	}
}

// MarginTrend builds a line-with-markers chart of per-month gross margin
// percentages, labeled with the "YYYY-MM" period keys.
func MarginTrend(result models.MarginTrendResult) *models.Chart {
	labels := make([]string, len(result.Periods))
	for i, period := range result.Periods {
		labels[i] = period.String()
	}
	values := make([]float64, len(result.Margins))
	copy(values, result.Margins)

	return &models.Chart{
		Kind:   models.ChartLineMarkers,
		Title:  "Gross Margin Trend",
		XLabel: "Month",
		YLabel: "Margin (%)",
		Series: []models.Series{
			{Name: "Gross Margin %", Labels: labels, Values: values},
		},
	}
}

// OpexBreakdown builds a bar chart with one bar per operating expense
// category, in the sorted order the result carries.
func OpexBreakdown(result models.OpexBreakdownResult) *models.Chart {
	labels := make([]string, 0, len(result.Totals))
	values := make([]float64, 0, len(result.Totals))
	for _, total := range result.Totals {
		labels = append(labels, total.Category)
		values = append(values, total.AmountUSD.InexactFloat64())
	}

	return &models.Chart{
		Kind:   models.ChartBar,
		Title:  "OpEx Breakdown",
		XLabel: "Category",
		YLabel: "Amount (USD)",
		Series: []models.Series{
			{Name: "Opex", Labels: labels, Values: values},
		},
	}
}
