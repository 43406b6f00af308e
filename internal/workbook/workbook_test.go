package workbook

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/cfo-copilot/internal/logging"
)

const testWorkbookXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"
          xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="actuals" sheetId="1" r:id="rId1"/>
    <sheet name="fx" sheetId="2" r:id="rId2"/>
  </sheets>
</workbook>`

const testRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet2.xml"/>
</Relationships>`

const testSharedStringsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="6" uniqueCount="6">
  <si><t>month</t></si>
  <si><t>account_category</t></si>
  <si><t>currency</t></si>
  <si><t>amount</t></si>
  <si><t>Revenue</t></si>
  <si><r><t>Opex:</t></r><r><t>Rent</t></r></si>
</sst>`

const testSheet1XML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1">
      <c r="A1" t="s"><v>0</v></c>
      <c r="B1" t="s"><v>1</v></c>
      <c r="C1" t="s"><v>2</v></c>
      <c r="D1" t="s"><v>3</v></c>
    </row>
    <row r="2">
      <c r="A2"><v>45809</v></c>
      <c r="B2" t="s"><v>4</v></c>
      <c r="C2" t="inlineStr"><is><t>USD</t></is></c>
      <c r="D2"><v>12500.5</v></c>
    </row>
    <row r="3">
      <c r="A3"><v>45809</v></c>
      <c r="B3" t="s"><v>5</v></c>
      <c r="D3"><v>300</v></c>
    </row>
  </sheetData>
</worksheet>`

const testSheet2XML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1">
      <c r="A1" t="inlineStr"><is><t>rate_to_usd</t></is></c>
    </row>
    <row r="2">
      <c r="A2"><v>1.08</v></c>
    </row>
  </sheetData>
</worksheet>`

func writeTestWorkbook(t *testing.T, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	return path
}

func defaultTestParts() map[string]string {
	return map[string]string{
		"xl/workbook.xml":            testWorkbookXML,
		"xl/_rels/workbook.xml.rels": testRelsXML,
		"xl/sharedStrings.xml":       testSharedStringsXML,
		"xl/worksheets/sheet1.xml":   testSheet1XML,
		"xl/worksheets/sheet2.xml":   testSheet2XML,
	}
}

func TestOpen(t *testing.T) {
	path := writeTestWorkbook(t, defaultTestParts())

	wb, err := Open(path, logging.NewMockLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"actuals", "fx"}, wb.SheetNames())

	sheet, ok := wb.Sheet("actuals")
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, []string{"month", "account_category", "currency", "amount"}, sheet.Rows[0])
	assert.Equal(t, []string{"45809", "Revenue", "USD", "12500.5"}, sheet.Rows[1])

	// The gap at C3 must stay in place so columns keep their meaning
	assert.Equal(t, []string{"45809", "Opex:Rent", "", "300"}, sheet.Rows[2])
}

func TestOpenSheetLookupIsCaseInsensitive(t *testing.T) {
	path := writeTestWorkbook(t, defaultTestParts())

	wb, err := Open(path, logging.NewMockLogger())
	require.NoError(t, err)

	sheet, ok := wb.Sheet("FX")
	require.True(t, ok)
	assert.Equal(t, "fx", sheet.Name)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []string{"rate_to_usd"}, sheet.Rows[0])
	assert.Equal(t, []string{"1.08"}, sheet.Rows[1])

	_, ok = wb.Sheet("missing")
	assert.False(t, ok)
}

func TestOpenWithoutRelationshipsFallsBackToPartNames(t *testing.T) {
	parts := defaultTestParts()
	delete(parts, "xl/_rels/workbook.xml.rels")
	path := writeTestWorkbook(t, parts)

	wb, err := Open(path, logging.NewMockLogger())
	require.NoError(t, err)

	sheet, ok := wb.Sheet("actuals")
	require.True(t, ok)
	assert.Len(t, sheet.Rows, 3)
}

func TestOpenRejectsArchiveWithoutWorkbookIndex(t *testing.T) {
	path := writeTestWorkbook(t, map[string]string{
		"readme.txt": "not a spreadsheet",
	})

	_, err := Open(path, logging.NewMockLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing xl/workbook.xml")
}

func TestOpenRejectsNonArchiveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, err := Open(path, logging.NewMockLogger())
	require.Error(t, err)
}

func TestOpenLogsShortSharedStringTable(t *testing.T) {
	parts := defaultTestParts()
	// Reference index 9 does not exist in the shared string table
	parts["xl/worksheets/sheet2.xml"] = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1"><c r="A1" t="s"><v>9</v></c></row>
  </sheetData>
</worksheet>`
	path := writeTestWorkbook(t, parts)

	mock := logging.NewMockLogger()
	wb, err := Open(path, mock)
	require.NoError(t, err)

	sheet, ok := wb.Sheet("fx")
	require.True(t, ok)
	assert.Equal(t, []string{""}, sheet.Rows[0])
	assert.True(t, mock.HasEntry("WARN", "Shared string index out of range"))
}

func TestCellColumn(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		expected int
	}{
		{"First column", "A1", 0},
		{"Second column", "B12", 1},
		{"Late column", "Z3", 25},
		{"Two letter column", "AA10", 26},
		{"Another two letter column", "AB1", 27},
		{"No letters", "42", -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cellColumn(tc.ref))
		})
	}
}
