package dataerror

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadError(t *testing.T) {
	tests := []struct {
		name     string
		err      *LoadError
		expected string
	}{
		{
			name: "missing table in source",
			err: &LoadError{
				Source: "fixtures",
				Table:  "actuals",
				Err:    errors.New("no such file"),
			},
			expected: "data source fixtures: table 'actuals' unavailable: no such file",
		},
		{
			name: "missing source",
			err: &LoadError{
				Source: "data.xlsx",
				Err:    errors.New("open data.xlsx: no such file or directory"),
			},
			expected: "data source data.xlsx unavailable: open data.xlsx: no such file or directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestLoadError_Unwrap(t *testing.T) {
	underlying := fs.ErrNotExist
	loadErr := &LoadError{Source: "fixtures", Table: "cash", Err: underlying}

	assert.Equal(t, underlying, loadErr.Unwrap())
	assert.True(t, errors.Is(loadErr, fs.ErrNotExist))

	var target *LoadError
	assert.True(t, errors.As(loadErr, &target))
	assert.Equal(t, "cash", target.Table)
}

func TestSchemaError(t *testing.T) {
	err := &SchemaError{Table: "fx", Missing: []string{"rate_to_usd"}}
	assert.Equal(t, "table 'fx' is missing required columns [rate_to_usd]", err.Error())

	var target *SchemaError
	assert.True(t, errors.As(error(err), &target))
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name:     "row specific",
			err:      &ValidationError{Table: "actuals", Row: 3, Reason: "unparseable month 'n/a'"},
			expected: "table 'actuals' row 3: unparseable month 'n/a'",
		},
		{
			name:     "table level",
			err:      &ValidationError{Table: "fx", Reason: "duplicate rate for (2025-06, EUR)"},
			expected: "table 'fx': duplicate rate for (2025-06, EUR)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}
