package reconcile

import (
	"fmt"

	"roster-audit/core/table"

	"golang.org/x/sync/errgroup"
)

// DefaultUnknownDepartment labels differences when the old table has no department column.
const DefaultUnknownDepartment = "unknown"

// Audit runs the full pipeline: resolve both key columns, filter both tables
// and reconcile them. Nothing is produced if a key column cannot be resolved.
func Audit(oldTbl, newTbl *table.Table, policy Policy) (*Report, error) {
	keyOld, keyNew, err := ResolveKeys(oldTbl, newTbl, policy.Key)
	if err != nil {
		return nil, err
	}

	filteredOld, statsOld := Filter(oldTbl, keyOld, policy.Exclusion)
	filteredNew, statsNew := Filter(newTbl, keyNew, policy.Exclusion)

	opts := policy.Options
	if opts.DepartmentColumn == "" {
		opts.DepartmentColumn = policy.Exclusion.Column
	}

	report, err := Reconcile(filteredOld, filteredNew, keyOld, keyNew, opts)
	if err != nil {
		return nil, err
	}
	report.Summary.Old = statsOld
	report.Summary.New = statsNew
	report.Warnings = append(report.Warnings, exclusionWarnings(policy.Exclusion, oldTbl, newTbl)...)
	return report, nil
}

// exclusionWarnings flags tables where the exclusion list cannot apply
// because the department column is missing.
func exclusionWarnings(policy ExclusionPolicy, oldTbl, newTbl *table.Table) []string {
	if policy.Column == "" || len(policy.Departments) == 0 {
		return nil
	}
	var out []string
	for _, side := range []struct {
		side Side
		t    *table.Table
	}{{SideOld, oldTbl}, {SideNew, newTbl}} {
		if !side.t.HasColumn(policy.Column) {
			out = append(out, fmt.Sprintf("%s table: department column %q not found, excluded departments not applied", side.side, policy.Column))
		}
	}
	return out
}

// Reconcile joins two filtered tables on their key columns. It returns the
// rows whose key exists on one side only and the field differences of every
// matched pair. Rows with a null key never match and are skipped.
//
// Differences are ordered by merged row (old table order, then new table order
// for repeated keys), then by old table column order.
func Reconcile(oldTbl, newTbl *table.Table, keyOld, keyNew string, opts Options) (*Report, error) {
	if !oldTbl.HasColumn(keyOld) {
		return nil, fmt.Errorf("%w: %q in %s", ErrKeyColumnNotFound, keyOld, oldTbl.Name)
	}
	if !newTbl.HasColumn(keyNew) {
		return nil, fmt.Errorf("%w: %q in %s", ErrKeyColumnNotFound, keyNew, newTbl.Name)
	}

	report := &Report{
		KeyOld:      keyOld,
		KeyNew:      keyNew,
		OldColumns:  append([]string(nil), oldTbl.Columns...),
		NewColumns:  append([]string(nil), newTbl.Columns...),
		OnlyOld:     []ExclusiveRecord{},
		OnlyNew:     []ExclusiveRecord{},
		Differences: []DifferenceRecord{},
		Warnings:    []string{},
	}

	oldIndex := indexByKey(oldTbl, keyOld)
	newIndex := indexByKey(newTbl, keyNew)
	report.Warnings = append(report.Warnings, oldIndex.warnings(SideOld, keyOld)...)
	report.Warnings = append(report.Warnings, newIndex.warnings(SideNew, keyNew)...)

	var pairs []MatchedPair
	for _, row := range oldTbl.Rows {
		key := row.Get(keyOld)
		if key.IsNull() {
			continue
		}
		matches, ok := newIndex.rows[key]
		if !ok {
			report.OnlyOld = append(report.OnlyOld, ExclusiveRecord{Side: SideOld, Key: key, Row: row})
			continue
		}
		for _, i := range matches {
			pairs = append(pairs, MatchedPair{Key: key, Old: row, New: newTbl.Rows[i]})
		}
	}

	for _, row := range newTbl.Rows {
		key := row.Get(keyNew)
		if key.IsNull() {
			continue
		}
		if _, ok := oldIndex.rows[key]; !ok {
			report.OnlyNew = append(report.OnlyNew, ExclusiveRecord{Side: SideNew, Key: key, Row: row})
		}
	}

	d := differ{
		columns: sharedColumns(oldTbl, newTbl, keyOld),
		opts:    opts,
		hasDept: opts.DepartmentColumn != "" && oldTbl.HasColumn(opts.DepartmentColumn),
	}
	if d.opts.UnknownDepartment == "" {
		d.opts.UnknownDepartment = DefaultUnknownDepartment
	}

	diffs, err := d.run(pairs)
	if err != nil {
		return nil, err
	}
	report.Differences = diffs

	report.Summary = Summary{
		Old:         FilterStats{Read: oldTbl.Len()},
		New:         FilterStats{Read: newTbl.Len()},
		OnlyOld:     len(report.OnlyOld),
		OnlyNew:     len(report.OnlyNew),
		Matched:     len(pairs),
		Differences: len(diffs),
	}
	for _, g := range report.DifferencesByColumn() {
		report.Summary.ChangedColumns = append(report.Summary.ChangedColumns, g.Column)
	}

	return report, nil
}

// keyIndex maps a key value to the positions of its rows, in table order.
type keyIndex struct {
	rows  map[table.Value][]int
	order []table.Value
}

func indexByKey(t *table.Table, keyColumn string) keyIndex {
	idx := keyIndex{rows: make(map[table.Value][]int, t.Len())}
	for i, row := range t.Rows {
		key := row.Get(keyColumn)
		if key.IsNull() {
			continue
		}
		if _, seen := idx.rows[key]; !seen {
			idx.order = append(idx.order, key)
		}
		idx.rows[key] = append(idx.rows[key], i)
	}
	return idx
}

func (idx keyIndex) warnings(side Side, keyColumn string) []string {
	var out []string
	for _, key := range idx.order {
		if n := len(idx.rows[key]); n > 1 {
			out = append(out, fmt.Sprintf("%s table: key %q in column %q appears %d times", side, key.String(), keyColumn, n))
		}
	}
	return out
}

// sharedColumns returns the old columns, except the key, that also exist in new.
func sharedColumns(oldTbl, newTbl *table.Table, keyOld string) []string {
	var cols []string
	for _, c := range oldTbl.Columns {
		if c == keyOld || !newTbl.HasColumn(c) {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

type differ struct {
	columns []string
	opts    Options
	hasDept bool
}

func (d differ) run(pairs []MatchedPair) ([]DifferenceRecord, error) {
	workers := d.opts.Workers
	if workers < 2 || len(pairs) < 2*workers {
		return d.diffRange(pairs), nil
	}

	chunk := (len(pairs) + workers - 1) / workers
	parts := make([][]DifferenceRecord, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(pairs) {
			break
		}
		end := min(start+chunk, len(pairs))
		g.Go(func() error {
			parts[w] = d.diffRange(pairs[start:end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := []DifferenceRecord{}
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

func (d differ) diffRange(pairs []MatchedPair) []DifferenceRecord {
	out := []DifferenceRecord{}
	for _, p := range pairs {
		out = append(out, d.diffPair(p)...)
	}
	return out
}

func (d differ) diffPair(p MatchedPair) []DifferenceRecord {
	var out []DifferenceRecord
	for _, col := range d.columns {
		oldVal := p.Old.Get(col)
		newVal := p.New.Get(col)

		switch {
		case oldVal.IsNull() && newVal.IsNull():
			continue
		case oldVal.IsNull() || newVal.IsNull():
			if !d.opts.ReportOneSidedNulls {
				continue
			}
		case oldVal.Equal(newVal):
			continue
		}

		out = append(out, DifferenceRecord{
			Key:        p.Key,
			Department: d.department(p.Old),
			Column:     col,
			Old:        oldVal,
			New:        newVal,
		})
	}
	return out
}

func (d differ) department(row table.Row) table.Value {
	if !d.hasDept {
		return table.Text(d.opts.UnknownDepartment)
	}
	return row.Get(d.opts.DepartmentColumn)
}
