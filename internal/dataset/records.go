package dataset

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/cfo-copilot/internal/currencyutils"
	"fjacquet/cfo-copilot/internal/dataerror"
	"fjacquet/cfo-copilot/internal/dateutils"
	"fjacquet/cfo-copilot/internal/models"
)

// Required columns per table, matched after trimming and lowercasing the
// header cells.
const (
	columnMonth    = "month"
	columnCategory = "account_category"
	columnCurrency = "currency"
	columnAmount   = "amount"
	columnRate     = "rate_to_usd"
	columnCash     = "cash_usd"
)

// parseLedgerRows converts raw actuals or budget records into ledger rows.
func parseLedgerRows(table string, rows [][]string) ([]models.LedgerRow, error) {
	header, data, err := splitTable(table, rows, columnMonth, columnCategory, columnCurrency, columnAmount)
	if err != nil {
		return nil, err
	}

	ledger := make([]models.LedgerRow, 0, len(data))
	for i, cells := range data {
		if blankRow(cells) {
			continue
		}
		rowNum := i + 1

		period, err := parsePeriodCell(table, rowNum, cellAt(cells, header[columnMonth]))
		if err != nil {
			return nil, err
		}

		category := strings.TrimSpace(cellAt(cells, header[columnCategory]))
		if category == "" {
			return nil, &dataerror.ValidationError{Table: table, Row: rowNum, Reason: "missing account_category"}
		}

		currency := strings.ToUpper(strings.TrimSpace(cellAt(cells, header[columnCurrency])))
		if currency == "" {
			return nil, &dataerror.ValidationError{Table: table, Row: rowNum, Reason: "missing currency"}
		}

		amount, err := parseAmountCell(table, rowNum, columnAmount, cellAt(cells, header[columnAmount]))
		if err != nil {
			return nil, err
		}

		ledger = append(ledger, models.LedgerRow{
			Period:          period,
			AccountCategory: category,
			Currency:        currency,
			Amount:          amount,
		})
	}

	return ledger, nil
}

// parseFxRows converts raw fx records into rates, rejecting non-positive
// rates and duplicate (period, currency) pairs.
func parseFxRows(table string, rows [][]string) ([]models.FxRate, error) {
	header, data, err := splitTable(table, rows, columnMonth, columnCurrency, columnRate)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(data))
	rates := make([]models.FxRate, 0, len(data))
	for i, cells := range data {
		if blankRow(cells) {
			continue
		}
		rowNum := i + 1

		period, err := parsePeriodCell(table, rowNum, cellAt(cells, header[columnMonth]))
		if err != nil {
			return nil, err
		}

		currency := strings.ToUpper(strings.TrimSpace(cellAt(cells, header[columnCurrency])))
		if currency == "" {
			return nil, &dataerror.ValidationError{Table: table, Row: rowNum, Reason: "missing currency"}
		}

		rate, err := parseAmountCell(table, rowNum, columnRate, cellAt(cells, header[columnRate]))
		if err != nil {
			return nil, err
		}
		if !rate.IsPositive() {
			return nil, &dataerror.ValidationError{
				Table:  table,
				Row:    rowNum,
				Reason: fmt.Sprintf("rate_to_usd must be positive, got %s", rate),
			}
		}

		key := period.String() + " " + currency
		if seen[key] {
			return nil, &dataerror.ValidationError{
				Table:  table,
				Row:    rowNum,
				Reason: fmt.Sprintf("duplicate rate for %s in %s", currency, period),
			}
		}
		seen[key] = true

		rates = append(rates, models.FxRate{Period: period, Currency: currency, RateToUSD: rate})
	}

	return rates, nil
}

// parseCashRows converts raw cash records into balances, rejecting
// duplicate periods.
func parseCashRows(table string, rows [][]string) ([]models.CashRow, error) {
	header, data, err := splitTable(table, rows, columnMonth, columnCash)
	if err != nil {
		return nil, err
	}

	seen := make(map[models.Period]bool, len(data))
	cash := make([]models.CashRow, 0, len(data))
	for i, cells := range data {
		if blankRow(cells) {
			continue
		}
		rowNum := i + 1

		period, err := parsePeriodCell(table, rowNum, cellAt(cells, header[columnMonth]))
		if err != nil {
			return nil, err
		}

		balance, err := parseAmountCell(table, rowNum, columnCash, cellAt(cells, header[columnCash]))
		if err != nil {
			return nil, err
		}

		if seen[period] {
			return nil, &dataerror.ValidationError{
				Table:  table,
				Row:    rowNum,
				Reason: fmt.Sprintf("duplicate cash balance for %s", period),
			}
		}
		seen[period] = true

		cash = append(cash, models.CashRow{Period: period, CashUSD: balance})
	}

	return cash, nil
}

// splitTable validates the header row and returns the column index along
// with the data rows.
func splitTable(table string, rows [][]string, required ...string) (map[string]int, [][]string, error) {
	if len(rows) == 0 {
		return nil, nil, &dataerror.SchemaError{Table: table, Missing: required}
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, exists := header[name]; !exists {
			header[name] = i
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := header[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &dataerror.SchemaError{Table: table, Missing: missing}
	}

	return header, rows[1:], nil
}

// parsePeriodCell parses a month cell into a period.
func parsePeriodCell(table string, row int, raw string) (models.Period, error) {
	period, err := dateutils.ParsePeriod(raw)
	if err != nil {
		return models.Period{}, &dataerror.ValidationError{
			Table:  table,
			Row:    row,
			Reason: fmt.Sprintf("invalid month %q", strings.TrimSpace(raw)),
		}
	}
	return period, nil
}

// parseAmountCell parses a numeric cell into a decimal.
func parseAmountCell(table string, row int, column, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, &dataerror.ValidationError{
			Table:  table,
			Row:    row,
			Reason: fmt.Sprintf("missing %s", column),
		}
	}

	amount, err := currencyutils.ParseAmount(trimmed)
	if err != nil {
		return decimal.Zero, &dataerror.ValidationError{
			Table:  table,
			Row:    row,
			Reason: fmt.Sprintf("invalid %s %q", column, trimmed),
		}
	}

	return amount, nil
}

// cellAt returns the cell at index or an empty string when the row is short.
func cellAt(cells []string, index int) string {
	if index < len(cells) {
		return cells[index]
	}
	return ""
}

// blankRow reports whether every cell of a row is empty after trimming.
func blankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
