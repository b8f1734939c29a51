package workbook

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"roster-audit/core/reconcile"
	"roster-audit/core/table"

	"github.com/xuri/excelize/v2"
)

// Default sheet titles of an exported report.
const (
	SheetOnlyOld     = "Only Old"
	SheetOnlyNew     = "Only New"
	SheetDifferences = "Differences"
)

const maxSheetName = 31

// ErrUnknownSet is returned for a report set name other than the Set constants.
var ErrUnknownSet = errors.New("unknown report set")

// Set names one section of a report that can be exported on its own.
type Set string

const (
	SetOnlyOld     Set = "only_old"
	SetOnlyNew     Set = "only_new"
	SetDifferences Set = "differences"
)

// ParseSet validates a report set name.
func ParseSet(s string) (Set, error) {
	switch set := Set(strings.ToLower(strings.TrimSpace(s))); set {
	case SetOnlyOld, SetOnlyNew, SetDifferences:
		return set, nil
	default:
		return "", fmt.Errorf("%w: %q (available: %s, %s, %s)", ErrUnknownSet, s, SetOnlyOld, SetOnlyNew, SetDifferences)
	}
}

// ReportOptions controls the layout of an exported report.
type ReportOptions struct {
	// NullSentinel is written for null old/new values in difference rows.
	NullSentinel string
	// DepartmentLabel heads the department column of the differences sheet.
	DepartmentLabel string
	// SplitByField adds one worksheet per changed column.
	SplitByField bool
}

// WriteReport renders a reconciliation report as an xlsx workbook.
func WriteReport(w io.Writer, report *reconcile.Report, opts ReportOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := headerStyle(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetOnlyOld); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeTable(f, SheetOnlyOld, report.OnlyOldTable(), "", bold); err != nil {
		return err
	}
	if err := addTable(f, SheetOnlyNew, report.OnlyNewTable(), "", bold); err != nil {
		return err
	}

	header := differenceHeader(report, opts)
	if err := addTable(f, SheetDifferences, differenceTable(header, report.Differences), opts.NullSentinel, bold); err != nil {
		return err
	}

	if opts.SplitByField {
		used := map[string]bool{"only old": true, "only new": true, "differences": true}
		for _, group := range report.DifferencesByColumn() {
			name := sheetName(group.Column, used)
			if err := addTable(f, name, differenceTable(header, group.Differences), opts.NullSentinel, bold); err != nil {
				return err
			}
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteSet renders one section of a report as a one-sheet workbook.
func WriteSet(w io.Writer, report *reconcile.Report, set Set, opts ReportOptions) error {
	switch set {
	case SetOnlyOld:
		return writeSingle(w, SheetOnlyOld, report.OnlyOldTable(), "")
	case SetOnlyNew:
		return writeSingle(w, SheetOnlyNew, report.OnlyNewTable(), "")
	case SetDifferences:
		t := differenceTable(differenceHeader(report, opts), report.Differences)
		return writeSingle(w, SheetDifferences, t, opts.NullSentinel)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSet, set)
	}
}

// WriteTable renders a single table as a one-sheet workbook.
func WriteTable(w io.Writer, sheet string, t *table.Table) error {
	return writeSingle(w, sheet, t, "")
}

func writeSingle(w io.Writer, sheet string, t *table.Table, nullToken string) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := headerStyle(f)
	if err != nil {
		return err
	}

	sheet = sheetName(sheet, map[string]bool{})
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeTable(f, sheet, t, nullToken, bold); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	return style, nil
}

func addTable(f *excelize.File, sheet string, t *table.Table, nullToken string, style int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	return writeTable(f, sheet, t, nullToken, style)
}

func writeTable(f *excelize.File, sheet string, t *table.Table, nullToken string, style int) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet, err)
	}
	if len(t.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return fmt.Errorf("failed to style header of %q: %w", sheet, err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(t.Columns))
		if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
			return fmt.Errorf("failed to size columns of %q: %w", sheet, err)
		}
	}

	for i, rec := range t.Records() {
		for j, v := range rec {
			value, ok := cellOf(v, nullToken)
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

// cellOf returns the cell content for v, or false when the cell stays blank.
func cellOf(v table.Value, nullToken string) (any, bool) {
	if n, ok := v.Float(); ok {
		return n, true
	}
	s := v.Format(nullToken)
	return s, s != ""
}

func differenceHeader(report *reconcile.Report, opts ReportOptions) []string {
	label := opts.DepartmentLabel
	if label == "" {
		label = "department"
	}
	return []string{report.KeyOld, label, "field", "old value", "new value"}
}

// differenceTable lays out difference records under header. Repeated header
// names are suffixed, so a key column called "field" stays distinct.
func differenceTable(header []string, diffs []reconcile.DifferenceRecord) *table.Table {
	columns := headerNames(header)
	t := &table.Table{Name: SheetDifferences, Columns: columns}
	for _, d := range diffs {
		t.Rows = append(t.Rows, table.Row{
			columns[0]: d.Key,
			columns[1]: d.Department,
			columns[2]: table.Text(d.Column),
			columns[3]: d.Old,
			columns[4]: d.New,
		})
	}
	return t
}

// sheetName makes a valid worksheet title from s that is not in used.
// Titles are compared case-insensitively, as Excel does.
func sheetName(s string, used map[string]bool) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	s = strings.Trim(s, "'")
	if s == "" {
		s = "Sheet"
	}
	s = truncate(s, maxSheetName)

	name := s
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncate(s, maxSheetName-len([]rune(suffix))) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
