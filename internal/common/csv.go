// Package common provides shared CSV export functionality.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fjacquet/cfo-copilot/internal/logging"
	"fjacquet/cfo-copilot/internal/models"
)

// Delimiter is the global CSV output delimiter. It can be configured
// through the CSV_DELIMITER environment variable.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		// Use first rune only
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// NormalizedCSVRow is the CSV projection of one USD-normalized ledger
// row. Amounts are written with two decimal places; the rate keeps its
// source precision. Converted is false for rows covered by the
// identity-rate fallback.
type NormalizedCSVRow struct {
	Month           string `csv:"month"`
	AccountCategory string `csv:"account_category"`
	Currency        string `csv:"currency"`
	Amount          string `csv:"amount"`
	AmountUSD       string `csv:"amount_usd"`
	RateApplied     string `csv:"rate_applied"`
	Converted       bool   `csv:"converted"`
}

// WriteNormalizedToCSV writes USD-normalized ledger rows to a CSV file,
// creating parent directories as needed. Row order is preserved.
func WriteNormalizedToCSV(rows []models.NormalizedRow, csvFile string, logger logging.Logger) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	logger.Info("Writing normalized rows to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})

	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	records := make([]NormalizedCSVRow, 0, len(rows))
	for _, row := range rows {
		records = append(records, NormalizedCSVRow{
			Month:           row.Period.String(),
			AccountCategory: row.AccountCategory,
			Currency:        row.Currency,
			Amount:          row.Amount.StringFixed(2),
			AmountUSD:       row.AmountUSD.StringFixed(2),
			RateApplied:     row.RateApplied.String(),
			Converted:       row.Converted,
		})
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.Info("Successfully wrote normalized rows to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}
