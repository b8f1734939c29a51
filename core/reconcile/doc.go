// Package reconcile compares two roster snapshots, a legacy export ("old") and
// its replacement ("new"), and reports where they disagree.
//
// # Pipeline
//
// Audit runs the three steps in order:
//
//  1. Key resolution: ResolveKeys finds the join-key column of each table by
//     substring match against a JoinKeySpec. The first matching column wins.
//  2. Filtering: Filter drops rows with a null key, then rows whose department
//     is listed in the ExclusionPolicy.
//  3. Reconciliation: Reconcile splits rows into old-only, new-only and matched
//     pairs, and diffs every matched pair column by column.
//
// # Difference rules
//
// For each column present on both sides (the key excluded):
//   - both values null: no difference
//   - one value null: reported only with Options.ReportOneSidedNulls
//   - both present and unequal: difference
//
// Comparison is exact. Differences follow merged-row order, then the column
// order of the old table. DifferencesByColumn groups them for display without
// reordering.
//
// # Usage Example
//
//	policy, _ := cfg.Audit.Policy()
//	report, err := reconcile.Audit(oldTable, newTable, policy)
//	var notFound *reconcile.KeyColumnNotFoundError
//	if errors.As(err, &notFound) {
//	    fmt.Println(notFound.OldColumns, notFound.NewColumns)
//	}
//
// # Presets
//
// ByIDPreset and ByNamePreset (and their Arabic variants) cover the two ways
// the rosters are usually joined. CustomKey accepts arbitrary phrases.
package reconcile
