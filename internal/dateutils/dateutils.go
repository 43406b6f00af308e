// Package dateutils provides date and period parsing helpers for monthly
// financial data.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fjacquet/cfo-copilot/internal/models"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO   = "2006-01-02"
	DateLayoutFull  = "2006-01-02 15:04:05"
	PeriodLayoutISO = "2006-01"
)

// PeriodFormats is a list of month-resolution formats to try when parsing
// period strings.
var PeriodFormats = []string{
	PeriodLayoutISO, // YYYY-MM
	"2006-1",        // YYYY-M
	"01/2006",       // MM/YYYY
	"1/2006",        // M/YYYY
	"2006/01",       // YYYY/MM
	"January 2006",  // Month YYYY
	"Jan 2006",      // MMM YYYY
}

// DateFormats is a list of day-resolution formats to try when parsing
// period strings; matches are truncated to their month.
var DateFormats = []string{
	DateLayoutISO,     // YYYY-MM-DD
	"2006/01/02",      // YYYY/MM/DD
	DateLayoutFull,    // YYYY-MM-DD HH:MM:SS
	time.RFC3339,      // ISO 8601
	"01/02/2006",      // MM/DD/YYYY (US format)
	"02.01.2006",      // DD.MM.YYYY (European)
	"January 2, 2006", // Month D, YYYY
	"Jan 2, 2006",     // MMM D, YYYY
}

// Spreadsheet serials are days since the epoch below. Values under the
// minimum are rejected so bare years like "2025" are not read as serials.
const (
	excelSerialMin = 10000   // 1927-05-18
	excelSerialMax = 2958465 // 9999-12-31
)

var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	// Trim whitespace
	dateStr = strings.TrimSpace(dateStr)

	// Replace multiple spaces with a single space
	re := regexp.MustCompile(`\s+`)
	dateStr = re.ReplaceAllString(dateStr, " ")

	return dateStr
}

// ParsePeriod parses a month-resolution period from the kinds of values
// found in finance exports: "2025-06", "06/2025", "June 2025", full dates
// such as "2025-06-01", and spreadsheet date serials such as "45809".
func ParsePeriod(value string) (models.Period, error) {
	cleaned := CleanDateString(value)
	if cleaned == "" {
		return models.Period{}, fmt.Errorf("empty period value")
	}

	// Try each month-resolution format until one works
	for _, format := range PeriodFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return models.PeriodOf(t), nil
		}
	}

	// Fall back to day-resolution formats, keeping only the month
	for _, format := range DateFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return models.PeriodOf(t), nil
		}
	}

	if t, ok := ParseExcelSerial(cleaned); ok {
		return models.PeriodOf(t), nil
	}

	return models.Period{}, fmt.Errorf("unable to parse period: %s", value)
}

// ParseExcelSerial converts a spreadsheet date serial to a time.Time.
// The fractional part (time of day) is discarded.
func ParseExcelSerial(value string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return time.Time{}, false
	}

	days := int(serial)
	if days < excelSerialMin || days > excelSerialMax {
		return time.Time{}, false
	}

	return excelEpoch.AddDate(0, 0, days), true
}

// FormatDate formats a time.Time value according to the specified layout
// If no layout is provided, DateLayoutISO is used
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}
