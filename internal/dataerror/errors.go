// Package dataerror defines the typed errors surfaced by dataset loading.
// All of them are terminal: a failed load blocks every subsequent query.
package dataerror

import "fmt"

// LoadError represents a missing or unreadable data source (file, directory
// or workbook sheet). It answers the "data unavailable" case.
type LoadError struct {
	Source string
	Table  string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("data source %s: table '%s' unavailable: %v", e.Source, e.Table, e.Err)
	}
	return fmt.Sprintf("data source %s unavailable: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SchemaError represents a table whose header row lacks required columns
// after whitespace trimming.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table '%s' is missing required columns %v", e.Table, e.Missing)
}

// ValidationError represents a row-level problem inside an otherwise
// well-formed table: unparseable period or amount, empty category, a
// non-positive FX rate, or a duplicate key.
type ValidationError struct {
	Table  string
	Row    int // 1-based data row number, 0 when not row-specific
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("table '%s' row %d: %s", e.Table, e.Row, e.Reason)
	}
	return fmt.Sprintf("table '%s': %s", e.Table, e.Reason)
}
