package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"roster-audit/core/table"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format is the file format of a roster snapshot.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatOf infers the format from a file or object name.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Options controls how raw files are decoded.
type Options struct {
	// Encoding names the CSV charset (e.g. "windows-1256"). Empty means UTF-8.
	Encoding string
	// Delimiter is the CSV field separator. Zero means comma.
	Delimiter rune
}

// SheetNames lists the sheets of a workbook. A CSV file has a single sheet
// named after the file.
func SheetNames(name string, data []byte) ([]string, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	if format == FormatCSV {
		return []string{strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))}, nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", name, err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// ReadTable parses one sheet of a workbook (or a CSV file) into a table.
// An empty sheet name selects the first sheet.
func ReadTable(name string, data []byte, sheet string, opts Options) (*table.Table, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	if format == FormatCSV {
		return ReadCSV(name, bytes.NewReader(data), opts)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", name, err)
	}
	defer f.Close()

	return readSheet(f, name, sheet)
}

func readSheet(f *excelize.File, name, sheet string) (*table.Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook %s has no sheets", ErrSheetNotFound, name)
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s (available: %v)", ErrSheetNotFound, sheet, name, sheets)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s/%s: %w", name, sheet, err)
	}

	columns := headerNames(paddedHeader(rows))

	t, err := table.New(name+":"+sheet, columns)
	if err != nil {
		return nil, err
	}

	for r := 1; r < len(rows); r++ {
		row := make(table.Row, len(columns))
		for c, raw := range rows[r] {
			v, err := cellValue(f, sheet, c+1, r+1, raw)
			if err != nil {
				return nil, err
			}
			if !v.IsNull() {
				row[columns[c]] = v
			}
		}
		if len(row) == 0 {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// cellValue types a raw cell: strings stay text, numeric cells become numbers.
func cellValue(f *excelize.File, sheet string, col, row int, raw string) (table.Value, error) {
	if raw == "" {
		return table.Null(), nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return table.Null(), err
	}
	kind, err := f.GetCellType(sheet, axis)
	if err != nil {
		return table.Null(), fmt.Errorf("failed to read cell %s!%s: %w", sheet, axis, err)
	}

	switch kind {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return table.ParseText(raw), nil
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return table.Text("TRUE"), nil
		}
		return table.Text("FALSE"), nil
	default:
		return table.Parse(raw), nil
	}
}

// paddedHeader returns the first row widened to the widest row, so cells past
// the last header cell land in "Unnamed: N" columns instead of being dropped.
func paddedHeader(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	header := make([]string, width)
	copy(header, rows[0])
	return header
}

// headerNames trims header cells, names blank ones "Unnamed: N" and suffixes
// repeated names with ".1", ".2", ... so that every column is unique.
func headerNames(header []string) []string {
	out := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	suffix := make(map[string]int)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for taken[name] {
			suffix[h]++
			name = fmt.Sprintf("%s.%d", h, suffix[h])
		}
		taken[name] = true
		out[i] = name
	}
	return out
}
