package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodString(t *testing.T) {
	tests := []struct {
		name     string
		period   Period
		expected string
	}{
		{name: "single digit month is padded", period: NewPeriod(2025, time.June), expected: "2025-06"},
		{name: "double digit month", period: NewPeriod(2024, time.December), expected: "2024-12"},
		{name: "january", period: NewPeriod(2025, time.January), expected: "2025-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.period.String())
		})
	}
}

func TestPeriodCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Period
		expected int
	}{
		{name: "earlier year", a: NewPeriod(2024, time.December), b: NewPeriod(2025, time.January), expected: -1},
		{name: "same year earlier month", a: NewPeriod(2025, time.May), b: NewPeriod(2025, time.June), expected: -1},
		{name: "equal", a: NewPeriod(2025, time.June), b: NewPeriod(2025, time.June), expected: 0},
		{name: "later", a: NewPeriod(2025, time.July), b: NewPeriod(2025, time.June), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Compare(tt.b))
			assert.Equal(t, tt.expected < 0, tt.a.Before(tt.b))
		})
	}
}

func TestPeriodAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    Period
		n        int
		expected Period
	}{
		{name: "within year", start: NewPeriod(2025, time.March), n: 2, expected: NewPeriod(2025, time.May)},
		{name: "across year boundary", start: NewPeriod(2025, time.November), n: 3, expected: NewPeriod(2026, time.February)},
		{name: "backwards across boundary", start: NewPeriod(2025, time.January), n: -1, expected: NewPeriod(2024, time.December)},
		{name: "zero", start: NewPeriod(2025, time.June), n: 0, expected: NewPeriod(2025, time.June)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.start.AddMonths(tt.n))
		})
	}
}

func TestPeriodTextRoundTrip(t *testing.T) {
	p := NewPeriod(2025, time.June)

	encoded, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06"`, string(encoded))

	var decoded Period
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, p, decoded)

	var bad Period
	assert.Error(t, bad.UnmarshalText([]byte("June 2025")))
}

func TestPeriodFilterMatches(t *testing.T) {
	june := NewPeriod(2025, time.June)
	july := NewPeriod(2025, time.July)
	lastYear := NewPeriod(2024, time.June)

	tests := []struct {
		name     string
		filter   PeriodFilter
		period   Period
		expected bool
	}{
		{name: "exact month match", filter: PeriodFilter{Month: time.June, Year: 2025}, period: june, expected: true},
		{name: "exact month mismatch", filter: PeriodFilter{Month: time.June, Year: 2025}, period: july, expected: false},
		{name: "exact month wrong year", filter: PeriodFilter{Month: time.June, Year: 2025}, period: lastYear, expected: false},
		{name: "year filter matches any month", filter: PeriodFilter{Year: 2025}, period: july, expected: true},
		{name: "year filter rejects other year", filter: PeriodFilter{Year: 2025}, period: lastYear, expected: false},
		{name: "zero filter matches everything", filter: PeriodFilter{}, period: lastYear, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(tt.period))
		})
	}
}

func TestPeriodFilterLabel(t *testing.T) {
	assert.Equal(t, "6/2025", PeriodFilter{Month: time.June, Year: 2025}.Label())
	assert.Equal(t, "11/2024", PeriodFilter{Month: time.November, Year: 2024}.Label())
	assert.Equal(t, "2025", PeriodFilter{Year: 2025}.Label())
	assert.Equal(t, "", PeriodFilter{}.Label())
}
