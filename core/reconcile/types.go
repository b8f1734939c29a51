package reconcile

import (
	"roster-audit/core/table"
)

// Side identifies which snapshot a record came from.
type Side string

const (
	// SideOld is the legacy (pre-migration) snapshot.
	SideOld Side = "old"
	// SideNew is the replacement (post-migration) snapshot.
	SideNew Side = "new"
)

// JoinKeySpec describes how to locate the join-key column in a table.
// A column is a candidate when its name contains every phrase.
type JoinKeySpec struct {
	// Name is the preset name (e.g. "id", "name") or "custom".
	Name string `json:"name"`

	// Phrases must all be substrings of the column name (case-sensitive).
	Phrases []string `json:"phrases"`
}

// ExclusionPolicy removes rows belonging to excluded departments before matching.
type ExclusionPolicy struct {
	// Column is the department column name. Tables without it are not filtered.
	Column string `json:"column"`

	// Departments lists the literal department identifiers to drop.
	Departments []string `json:"departments"`
}

// Options controls the field diff.
type Options struct {
	// ReportOneSidedNulls reports a difference when exactly one side is null.
	// Off by default: only non-null values that differ are reported.
	ReportOneSidedNulls bool

	// DepartmentColumn labels each difference with the old row's department.
	DepartmentColumn string

	// UnknownDepartment is used when the old table has no department column.
	UnknownDepartment string

	// Workers splits the diff into contiguous ranges computed concurrently.
	// Values below 2 run sequentially.
	Workers int
}

// Policy bundles everything the audit pipeline needs besides the two tables.
type Policy struct {
	Key       JoinKeySpec
	Exclusion ExclusionPolicy
	Options   Options
}

// MatchedPair is one old row and one new row sharing a join-key value.
type MatchedPair struct {
	Key table.Value
	Old table.Row
	New table.Row
}

// DifferenceRecord is one field that diverges between a matched pair.
type DifferenceRecord struct {
	// Key is the join-key value of the employee.
	Key table.Value `json:"key"`

	// Department is the pre-migration department label.
	Department table.Value `json:"department"`

	// Column is the name of the diverging field.
	Column string `json:"column"`

	// Old is the legacy value; null only when one-sided nulls are reported.
	Old table.Value `json:"old"`

	// New is the replacement value; null only when one-sided nulls are reported.
	New table.Value `json:"new"`
}

// ExclusiveRecord is a row whose key exists in only one snapshot.
type ExclusiveRecord struct {
	Side Side        `json:"side"`
	Key  table.Value `json:"key"`
	Row  table.Row   `json:"row"`
}

// ColumnDifferences groups the differences of one column.
type ColumnDifferences struct {
	Column      string             `json:"column"`
	Differences []DifferenceRecord `json:"differences"`
}

// FilterStats counts rows removed by the record filter.
type FilterStats struct {
	// Read is the number of rows before filtering.
	Read int `json:"read"`

	// NullKey counts rows dropped for a null join key.
	NullKey int `json:"null_key"`

	// Excluded counts rows dropped for an excluded department.
	Excluded int `json:"excluded"`
}

// Kept returns the number of surviving rows.
func (s FilterStats) Kept() int {
	return s.Read - s.NullKey - s.Excluded
}

// Summary provides aggregate counts for a report.
type Summary struct {
	Old FilterStats `json:"old"`
	New FilterStats `json:"new"`

	// OnlyOld counts rows present only in the old snapshot.
	OnlyOld int `json:"only_old"`

	// OnlyNew counts rows present only in the new snapshot.
	OnlyNew int `json:"only_new"`

	// Matched counts merged pairs.
	Matched int `json:"matched"`

	// Differences counts difference records.
	Differences int `json:"differences"`

	// ChangedColumns lists columns with at least one difference, in report order.
	ChangedColumns []string `json:"changed_columns"`
}

// Report is the outcome of reconciling two snapshots.
type Report struct {
	// KeyOld is the join-key column of the old table.
	KeyOld string `json:"key_old"`

	// KeyNew is the join-key column of the new table.
	KeyNew string `json:"key_new"`

	// OldColumns lists the old table columns, used to render OnlyOld.
	OldColumns []string `json:"old_columns"`

	// NewColumns lists the new table columns, used to render OnlyNew.
	NewColumns []string `json:"new_columns"`

	OnlyOld     []ExclusiveRecord  `json:"only_old"`
	OnlyNew     []ExclusiveRecord  `json:"only_new"`
	Differences []DifferenceRecord `json:"differences"`

	Summary Summary `json:"summary"`

	// Warnings holds non-fatal observations such as duplicated keys.
	Warnings []string `json:"warnings"`
}

// HasDifferences reports whether any field difference was found.
func (r *Report) HasDifferences() bool {
	return len(r.Differences) > 0
}

// DifferencesByColumn groups differences by column in first-appearance order.
// The underlying list is not reordered.
func (r *Report) DifferencesByColumn() []ColumnDifferences {
	var groups []ColumnDifferences
	pos := make(map[string]int)
	for _, d := range r.Differences {
		i, ok := pos[d.Column]
		if !ok {
			i = len(groups)
			pos[d.Column] = i
			groups = append(groups, ColumnDifferences{Column: d.Column})
		}
		groups[i].Differences = append(groups[i].Differences, d)
	}
	return groups
}

// OnlyOldTable renders the old-only records as a table with the old columns.
func (r *Report) OnlyOldTable() *table.Table {
	return exclusiveTable("only_old", r.OldColumns, r.OnlyOld)
}

// OnlyNewTable renders the new-only records as a table with the new columns.
func (r *Report) OnlyNewTable() *table.Table {
	return exclusiveTable("only_new", r.NewColumns, r.OnlyNew)
}

func exclusiveTable(name string, columns []string, records []ExclusiveRecord) *table.Table {
	t := table.MustNew(name, columns)
	for _, rec := range records {
		t.Append(rec.Row)
	}
	return t
}
