// Package dataset loads the monthly finance tables behind the copilot:
// actuals, budget, fx rates and cash balances.
//
// Two source layouts are supported. A directory source holds one CSV file
// per table (actuals.csv, budget.csv, fx.csv, cash.csv); a .xlsx source
// holds one worksheet per table under the same names.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"fjacquet/cfo-copilot/internal/dataerror"
	"fjacquet/cfo-copilot/internal/logging"
	"fjacquet/cfo-copilot/internal/models"
	"fjacquet/cfo-copilot/internal/workbook"
)

// Table names shared by CSV file names and workbook sheet names.
const (
	TableActuals = "actuals"
	TableBudget  = "budget"
	TableFx      = "fx"
	TableCash    = "cash"
)

// Snapshot is an immutable view of the loaded finance tables. Analyses
// read from it concurrently, so its slices must not be mutated after Load.
type Snapshot struct {
	Actuals []models.LedgerRow
	Budget  []models.LedgerRow
	Rates   []models.FxRate
	Cash    []models.CashRow
}

// Counts reports the number of rows per table.
func (s *Snapshot) Counts() map[string]int {
	return map[string]int{
		TableActuals: len(s.Actuals),
		TableBudget:  len(s.Budget),
		TableFx:      len(s.Rates),
		TableCash:    len(s.Cash),
	}
}

// Load reads the finance tables from source. A source ending in .xlsx is
// read as a spreadsheet; any other source is treated as a CSV directory.
func Load(ctx context.Context, source string, logger logging.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	var (
		snap *Snapshot
		err  error
	)
	if strings.EqualFold(filepath.Ext(source), ".xlsx") {
		snap, err = loadFromWorkbook(source, logger)
	} else {
		snap, err = loadFromCSVDir(ctx, source)
	}
	if err != nil {
		return nil, err
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldSource, Value: source},
		logging.Field{Key: TableActuals, Value: len(snap.Actuals)},
		logging.Field{Key: TableBudget, Value: len(snap.Budget)},
		logging.Field{Key: TableFx, Value: len(snap.Rates)},
		logging.Field{Key: TableCash, Value: len(snap.Cash)},
	).Info("Data loaded")

	return snap, nil
}

// loadFromCSVDir reads the four table files concurrently.
func loadFromCSVDir(ctx context.Context, dir string) (*Snapshot, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &dataerror.LoadError{Source: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &dataerror.LoadError{
			Source: dir,
			Err:    fmt.Errorf("not a directory or .xlsx workbook"),
		}
	}

	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := readTableCSV(ctx, dir, TableActuals)
		if err != nil {
			return err
		}
		snap.Actuals, err = parseLedgerRows(TableActuals, rows)
		return err
	})

	g.Go(func() error {
		rows, err := readTableCSV(ctx, dir, TableBudget)
		if err != nil {
			return err
		}
		snap.Budget, err = parseLedgerRows(TableBudget, rows)
		return err
	})

	g.Go(func() error {
		rows, err := readTableCSV(ctx, dir, TableFx)
		if err != nil {
			return err
		}
		snap.Rates, err = parseFxRows(TableFx, rows)
		return err
	})

	g.Go(func() error {
		rows, err := readTableCSV(ctx, dir, TableCash)
		if err != nil {
			return err
		}
		snap.Cash, err = parseCashRows(TableCash, rows)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snap, nil
}

// readTableCSV reads one table file into raw records.
func readTableCSV(ctx context.Context, dir, table string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, table+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, &dataerror.LoadError{Source: dir, Table: table, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &dataerror.LoadError{Source: dir, Table: table, Err: err}
	}

	return records, nil
}

// loadFromWorkbook reads the four tables from worksheets of one file.
func loadFromWorkbook(path string, logger logging.Logger) (*Snapshot, error) {
	wb, err := workbook.Open(path, logger)
	if err != nil {
		return nil, &dataerror.LoadError{Source: path, Err: err}
	}

	snap := &Snapshot{}

	rows, err := sheetRows(wb, path, TableActuals)
	if err != nil {
		return nil, err
	}
	if snap.Actuals, err = parseLedgerRows(TableActuals, rows); err != nil {
		return nil, err
	}

	if rows, err = sheetRows(wb, path, TableBudget); err != nil {
		return nil, err
	}
	if snap.Budget, err = parseLedgerRows(TableBudget, rows); err != nil {
		return nil, err
	}

	if rows, err = sheetRows(wb, path, TableFx); err != nil {
		return nil, err
	}
	if snap.Rates, err = parseFxRows(TableFx, rows); err != nil {
		return nil, err
	}

	if rows, err = sheetRows(wb, path, TableCash); err != nil {
		return nil, err
	}
	if snap.Cash, err = parseCashRows(TableCash, rows); err != nil {
		return nil, err
	}

	return snap, nil
}

func sheetRows(wb *workbook.Workbook, path, table string) ([][]string, error) {
	sheet, ok := wb.Sheet(table)
	if !ok {
		return nil, &dataerror.LoadError{
			Source: path,
			Table:  table,
			Err:    fmt.Errorf("worksheet not found"),
		}
	}
	return sheet.Rows, nil
}
