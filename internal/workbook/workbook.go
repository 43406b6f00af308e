// Package workbook reads worksheet data from Office Open XML spreadsheets.
//
// Only the parts needed for tabular data are parsed: the sheet index, the
// workbook relationships, the shared string table and the sheet cell values.
// Cell values are returned as raw text; numeric cells keep their stored form,
// so date cells surface as spreadsheet serials.
package workbook

import (
	"archive/zip"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/xmlpath.v2"

	"fjacquet/cfo-copilot/internal/logging"
)

var (
	workbookSheetPath = xmlpath.MustCompile("//sheets/sheet")
	sheetNamePath     = xmlpath.MustCompile("@name")
	sheetRelPath      = xmlpath.MustCompile("@id")
	relationshipPath  = xmlpath.MustCompile("//Relationship")
	relIDPath         = xmlpath.MustCompile("@Id")
	relTargetPath     = xmlpath.MustCompile("@Target")
	sharedStringPath  = xmlpath.MustCompile("//sst/si")
	sheetRowPath      = xmlpath.MustCompile("//sheetData/row")
	cellPath          = xmlpath.MustCompile("c")
	cellRefPath       = xmlpath.MustCompile("@r")
	cellTypePath      = xmlpath.MustCompile("@t")
	cellValuePath     = xmlpath.MustCompile("v")
	cellInlinePath    = xmlpath.MustCompile("is")
)

// Sheet holds the cell text of one worksheet, row by row.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook provides access to the worksheets of a spreadsheet file.
type Workbook struct {
	sheets map[string]*Sheet
	names  []string
	log    logging.Logger
}

type sheetRef struct {
	name  string
	relID string
}

// Open reads a spreadsheet file and parses every worksheet in it.
func Open(path string, logger logging.Logger) (*Workbook, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() {
		if err := zr.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	wb := &Workbook{
		sheets: make(map[string]*Sheet),
		log:    logger,
	}

	refs, err := wb.readIndex(parts)
	if err != nil {
		return nil, err
	}

	rels, err := wb.readRelationships(parts)
	if err != nil {
		return nil, err
	}

	shared, err := wb.readSharedStrings(parts)
	if err != nil {
		return nil, err
	}

	for i, ref := range refs {
		target, ok := rels[ref.relID]
		if !ok {
			// Fall back to the conventional part name when the
			// relationship is missing
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}
		target = normalizeTarget(target)

		part, ok := parts[target]
		if !ok {
			return nil, fmt.Errorf("worksheet part %s not found for sheet '%s'", target, ref.name)
		}

		rows, err := wb.readSheet(part, shared)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet '%s': %w", ref.name, err)
		}

		sheet := &Sheet{Name: ref.name, Rows: rows}
		wb.sheets[strings.ToLower(ref.name)] = sheet
		wb.names = append(wb.names, ref.name)
	}

	wb.log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(wb.names)},
	).Debug("Parsed workbook")

	return wb, nil
}

// Sheet returns the worksheet with the given name, ignoring case.
func (wb *Workbook) Sheet(name string) (*Sheet, bool) {
	sheet, ok := wb.sheets[strings.ToLower(name)]
	return sheet, ok
}

// SheetNames returns the worksheet names in workbook order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.names))
	copy(names, wb.names)
	return names
}

// readIndex parses xl/workbook.xml into the ordered list of sheets.
func (wb *Workbook) readIndex(parts map[string]*zip.File) ([]sheetRef, error) {
	part, ok := parts["xl/workbook.xml"]
	if !ok {
		return nil, fmt.Errorf("not a spreadsheet: missing xl/workbook.xml")
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook index: %w", err)
	}
	defer rc.Close()

	root, err := xmlpath.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workbook index: %w", err)
	}

	var refs []sheetRef
	iter := workbookSheetPath.Iter(root)
	for iter.Next() {
		node := iter.Node()
		name, _ := sheetNamePath.String(node)
		relID, _ := sheetRelPath.String(node)
		refs = append(refs, sheetRef{name: name, relID: relID})
	}

	if len(refs) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	return refs, nil
}

// readRelationships parses xl/_rels/workbook.xml.rels into an id to target map.
func (wb *Workbook) readRelationships(parts map[string]*zip.File) (map[string]string, error) {
	rels := make(map[string]string)

	part, ok := parts["xl/_rels/workbook.xml.rels"]
	if !ok {
		// Older generators may omit the relationships part entirely
		return rels, nil
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook relationships: %w", err)
	}
	defer rc.Close()

	root, err := xmlpath.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workbook relationships: %w", err)
	}

	iter := relationshipPath.Iter(root)
	for iter.Next() {
		node := iter.Node()
		id, _ := relIDPath.String(node)
		target, _ := relTargetPath.String(node)
		if id != "" && target != "" {
			rels[id] = target
		}
	}

	return rels, nil
}

// readSharedStrings parses the optional xl/sharedStrings.xml part.
func (wb *Workbook) readSharedStrings(parts map[string]*zip.File) ([]string, error) {
	part, ok := parts["xl/sharedStrings.xml"]
	if !ok {
		return nil, nil
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open shared strings: %w", err)
	}
	defer rc.Close()

	root, err := xmlpath.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse shared strings: %w", err)
	}

	var shared []string
	iter := sharedStringPath.Iter(root)
	for iter.Next() {
		// Node text covers plain <t> entries and rich text runs alike
		shared = append(shared, iter.Node().String())
	}

	return shared, nil
}

// readSheet parses one worksheet part into dense rows of cell text.
func (wb *Workbook) readSheet(part *zip.File, shared []string) ([][]string, error) {
	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open worksheet: %w", err)
	}
	defer rc.Close()

	root, err := xmlpath.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse worksheet: %w", err)
	}

	var rows [][]string
	rowIter := sheetRowPath.Iter(root)
	for rowIter.Next() {
		var cells []string
		next := 0

		cellIter := cellPath.Iter(rowIter.Node())
		for cellIter.Next() {
			node := cellIter.Node()

			col := next
			if ref, ok := cellRefPath.String(node); ok {
				if c := cellColumn(ref); c >= 0 {
					col = c
				}
			}

			for len(cells) <= col {
				cells = append(cells, "")
			}
			cells[col] = wb.cellText(node, shared)
			next = col + 1
		}

		rows = append(rows, cells)
	}

	return rows, nil
}

// cellText resolves the display text of a single cell node.
func (wb *Workbook) cellText(cell *xmlpath.Node, shared []string) string {
	cellType, _ := cellTypePath.String(cell)

	switch cellType {
	case "s":
		raw, ok := cellValuePath.String(cell)
		if !ok {
			return ""
		}
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || idx < 0 || idx >= len(shared) {
			wb.log.WithField(logging.FieldReason, raw).Warn("Shared string index out of range")
			return ""
		}
		return shared[idx]

	case "inlineStr":
		if iter := cellInlinePath.Iter(cell); iter.Next() {
			return iter.Node().String()
		}
		return ""

	case "b":
		raw, _ := cellValuePath.String(cell)
		if strings.TrimSpace(raw) == "1" {
			return "TRUE"
		}
		return "FALSE"

	default:
		// Numeric, formula string and error cells all carry their text in v
		raw, ok := cellValuePath.String(cell)
		if !ok {
			return ""
		}
		return raw
	}
}

// cellColumn converts the column letters of a cell reference like "B12"
// to a zero based column index.
func cellColumn(ref string) int {
	col := 0
	for _, ch := range ref {
		if ch < 'A' || ch > 'Z' {
			break
		}
		col = col*26 + int(ch-'A'+1)
	}
	return col - 1
}

// normalizeTarget resolves a relationship target to its path inside the
// archive.
func normalizeTarget(target string) string {
	target = strings.TrimPrefix(target, "/")
	if !strings.HasPrefix(target, "xl/") {
		target = "xl/" + target
	}
	return target
}
