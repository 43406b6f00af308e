// Package models defines the core data types shared across the application:
// accounting periods, ledger rows, query results, charts and the response
// envelope. All types are read-only after construction.
package models

import (
	"fmt"
	"time"
)

// Period identifies one accounting month as a (year, month) pair.
// Day and time components of source dates are discarded at load time.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod creates a Period from a year and month.
func NewPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

// PeriodOf derives the Period a timestamp falls in.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// IsZero returns true for the zero Period.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// String returns the canonical "YYYY-MM" label, e.g. "2025-06".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Compare orders periods chronologically.
// Returns -1 if p is before other, 0 if equal, 1 if after.
func (p Period) Compare(other Period) int {
	switch {
	case p.Year != other.Year:
		if p.Year < other.Year {
			return -1
		}
		return 1
	case p.Month != other.Month:
		if p.Month < other.Month {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Before reports whether p is chronologically before other.
func (p Period) Before(other Period) bool {
	return p.Compare(other) < 0
}

// AddMonths returns the period n months after p (n may be negative).
func (p Period) AddMonths(n int) Period {
	months := p.Year*12 + int(p.Month) - 1 + n
	return Period{Year: months / 12, Month: time.Month(months%12 + 1)}
}

// MarshalText renders the period as "YYYY-MM" for JSON and YAML output.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a "YYYY-MM" label.
func (p *Period) UnmarshalText(text []byte) error {
	t, err := time.Parse("2006-01", string(text))
	if err != nil {
		return fmt.Errorf("invalid period %q: %w", string(text), err)
	}
	*p = PeriodOf(t)
	return nil
}

// PeriodFilter narrows an aggregation to a single period or a whole year.
// A zero Month with a non-zero Year selects the year; the zero filter
// selects everything.
type PeriodFilter struct {
	Month time.Month
	Year  int
}

// IsZero returns true when the filter selects all periods.
func (f PeriodFilter) IsZero() bool {
	return f.Month == 0 && f.Year == 0
}

// Matches reports whether a period passes the filter.
func (f PeriodFilter) Matches(p Period) bool {
	switch {
	case f.Month != 0 && f.Year != 0:
		return p.Year == f.Year && p.Month == f.Month
	case f.Year != 0:
		return p.Year == f.Year
	default:
		return true
	}
}

// Label renders the filter the way answers reference it: "6/2025" for a
// month filter, "2025" for a year filter, "" for the zero filter. The
// month is not zero-padded.
func (f PeriodFilter) Label() string {
	switch {
	case f.Month != 0 && f.Year != 0:
		return fmt.Sprintf("%d/%d", int(f.Month), f.Year)
	case f.Year != 0:
		return fmt.Sprintf("%d", f.Year)
	default:
		return ""
	}
}
