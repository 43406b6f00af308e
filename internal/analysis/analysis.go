// Package analysis computes the financial aggregations behind every
// supported question: revenue vs budget, gross margin trend, operating
// expense breakdown, EBITDA proxy and cash runway. Every computation is
// a total function over a loaded snapshot. Degenerate inputs (empty
// tables, zero denominators, short history) produce zero-valued results,
// never errors.
package analysis

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"fjacquet/cfo-copilot/internal/dataset"
	"fjacquet/cfo-copilot/internal/fx"
	"fjacquet/cfo-copilot/internal/logging"
	"fjacquet/cfo-copilot/internal/models"
)

// cashWindow is the number of trailing cash balances the runway
// computation needs: the burn rate averages three month-over-month
// deltas, which takes four balances.
const cashWindow = 4

// Analyzer runs aggregations against one data snapshot. Amounts are
// converted to USD through the snapshot's own rate table before any
// summing; rows without a matching rate pass through at face value.
type Analyzer struct {
	snap   *dataset.Snapshot
	rates  *fx.Table
	logger logging.Logger
}

// New creates an Analyzer for a snapshot.
func New(snap *dataset.Snapshot, logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Analyzer{
		snap:   snap,
		rates:  fx.NewTable(snap.Rates),
		logger: logger,
	}
}

// RevenueVsBudget sums USD revenue in the actuals and budget tables for
// the filtered periods and reports the variance. VariancePct is 0 when
// the budget sum is zero.
func (a *Analyzer) RevenueVsBudget(filter models.PeriodFilter) models.RevenueVsBudgetResult {
	actual := a.sumUSD(a.snap.Actuals, filter, isRevenue)
	budget := a.sumUSD(a.snap.Budget, filter, isRevenue)
	variance := actual.Sub(budget)

	var variancePct float64
	if !budget.IsZero() {
		variancePct = variance.InexactFloat64() / budget.InexactFloat64() * 100
	}

	a.logger.Debug("Computed revenue vs budget",
		logging.Field{Key: logging.FieldPeriod, Value: filter.Label()},
		logging.Field{Key: "actual", Value: actual.String()},
		logging.Field{Key: "budget", Value: budget.String()})

	return models.RevenueVsBudgetResult{
		Actual:      actual,
		Budget:      budget,
		Variance:    variance,
		VariancePct: variancePct,
	}
}

// GrossMarginTrend computes the gross margin percentage for each of the
// newest n distinct periods in the actuals table, ordered oldest to
// newest, along with their mean. A period with zero revenue contributes
// a 0% margin. Fewer than n periods of history shortens the trend
// rather than failing.
func (a *Analyzer) GrossMarginTrend(n int) models.MarginTrendResult {
	if n <= 0 {
		return models.MarginTrendResult{}
	}

	periods := distinctPeriods(a.snap.Actuals)
	if len(periods) > n {
		periods = periods[len(periods)-n:]
	}
	if len(periods) == 0 {
		return models.MarginTrendResult{}
	}

	margins := make([]float64, 0, len(periods))
	var sum float64
	for _, period := range periods {
		filter := models.PeriodFilter{Month: period.Month, Year: period.Year}
		revenue := a.sumUSD(a.snap.Actuals, filter, isRevenue)
		cogs := a.sumUSD(a.snap.Actuals, filter, isCOGS)

		var margin float64
		if !revenue.IsZero() {
			margin = revenue.Sub(cogs).InexactFloat64() / revenue.InexactFloat64() * 100
		}
		margins = append(margins, margin)
		sum += margin
	}

	a.logger.Debug("Computed gross margin trend",
		logging.Field{Key: logging.FieldCount, Value: len(periods)},
		logging.Field{Key: logging.FieldPeriod, Value: periods[len(periods)-1].String()})

	return models.MarginTrendResult{
		Periods:   periods,
		Margins:   margins,
		AvgMargin: sum / float64(len(margins)),
	}
}

// OpexBreakdown sums USD operating expense spend per full category label
// for the filtered periods. Totals come back sorted by label.
func (a *Analyzer) OpexBreakdown(filter models.PeriodFilter) models.OpexBreakdownResult {
	rows := selectRows(a.snap.Actuals, filter, models.IsOpexCategory)
	normalized := a.rates.Normalize(rows)

	totals := make(map[string]decimal.Decimal)
	for _, row := range normalized {
		totals[row.AccountCategory] = totals[row.AccountCategory].Add(row.AmountUSD)
	}

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	result := models.OpexBreakdownResult{Totals: make([]models.CategoryTotal, 0, len(labels))}
	for _, label := range labels {
		result.Totals = append(result.Totals, models.CategoryTotal{
			Category:  label,
			AmountUSD: totals[label],
		})
	}

	a.logger.Debug("Computed opex breakdown",
		logging.Field{Key: logging.FieldPeriod, Value: filter.Label()},
		logging.Field{Key: logging.FieldCount, Value: len(result.Totals)})

	return result
}

// EbitdaProxy aggregates the whole actuals table into
// revenue - COGS - opex. There is no period filter; the proxy is a
// single headline number over all loaded history.
func (a *Analyzer) EbitdaProxy() models.EbitdaResult {
	normalized := a.rates.Normalize(a.snap.Actuals)

	var revenue, cogs, opex decimal.Decimal
	for _, row := range normalized {
		switch {
		case isRevenue(row.AccountCategory):
			revenue = revenue.Add(row.AmountUSD)
		case isCOGS(row.AccountCategory):
			cogs = cogs.Add(row.AmountUSD)
		case models.IsOpexCategory(row.AccountCategory):
			opex = opex.Add(row.AmountUSD)
		}
	}

	ebitda := revenue.Sub(cogs).Sub(opex)
	a.logger.Debug("Computed EBITDA proxy",
		logging.Field{Key: "ebitda", Value: ebitda.String()})

	return models.EbitdaResult{
		Revenue: revenue,
		COGS:    cogs,
		Opex:    opex,
		Ebitda:  ebitda,
	}
}

// CashRunway estimates how many months of cash remain at the trailing
// burn rate. The burn averages the three month-over-month deltas across
// the four newest cash balances. With cash flat or growing the runway
// is +Inf; with fewer than four balances everything is zero.
func (a *Analyzer) CashRunway() models.CashRunwayResult {
	if len(a.snap.Cash) < cashWindow {
		a.logger.Warn("Not enough cash history for a runway estimate",
			logging.Field{Key: logging.FieldCount, Value: len(a.snap.Cash)})
		return models.CashRunwayResult{}
	}

	cash := make([]models.CashRow, len(a.snap.Cash))
	copy(cash, a.snap.Cash)
	sort.Slice(cash, func(i, j int) bool {
		return cash[i].Period.Before(cash[j].Period)
	})
	window := cash[len(cash)-cashWindow:]

	for i := 0; i < len(window)-1; i++ {
		if window[i].Period.AddMonths(1) != window[i+1].Period {
			a.logger.Warn("Cash history has gaps, burn rate spans missing months",
				logging.Field{Key: logging.FieldPeriod, Value: window[i].Period.String()})
			break
		}
	}

	oldest := window[0].CashUSD
	newest := window[len(window)-1].CashUSD
	burn := oldest.Sub(newest).Div(decimal.NewFromInt(cashWindow - 1))
	balance := newest

	runway := math.Inf(1)
	if burn.IsPositive() {
		runway = balance.InexactFloat64() / burn.InexactFloat64()
	}

	a.logger.Debug("Computed cash runway",
		logging.Field{Key: "balance", Value: balance.String()},
		logging.Field{Key: "burn", Value: burn.String()})

	return models.CashRunwayResult{
		CashBalance:  balance,
		MonthlyBurn:  burn,
		RunwayMonths: runway,
	}
}

func (a *Analyzer) sumUSD(rows []models.LedgerRow, filter models.PeriodFilter, match func(string) bool) decimal.Decimal {
	return fx.TotalUSD(a.rates.Normalize(selectRows(rows, filter, match)))
}

func isRevenue(category string) bool { return category == models.CategoryRevenue }

func isCOGS(category string) bool { return category == models.CategoryCOGS }

// selectRows filters ledger rows by period and category predicate,
// preserving input order.
func selectRows(rows []models.LedgerRow, filter models.PeriodFilter, match func(string) bool) []models.LedgerRow {
	var selected []models.LedgerRow
	for _, row := range rows {
		if match(row.AccountCategory) && filter.Matches(row.Period) {
			selected = append(selected, row)
		}
	}
	return selected
}

// distinctPeriods returns the unique periods present in rows, sorted
// oldest first.
func distinctPeriods(rows []models.LedgerRow) []models.Period {
	seen := make(map[models.Period]bool)
	var periods []models.Period
	for _, row := range rows {
		if !seen[row.Period] {
			seen[row.Period] = true
			periods = append(periods, row.Period)
		}
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Before(periods[j])
	})
	return periods
}
