package reconcile

import (
	"roster-audit/core/table"
)

// Filter drops rows with a null join key, then rows whose department is
// excluded by the policy. Tables without the department column skip the
// second step. Surviving rows keep their order; columns are unchanged.
func Filter(t *table.Table, keyColumn string, policy ExclusionPolicy) (*table.Table, FilterStats) {
	stats := FilterStats{Read: t.Len()}

	excluded := make(map[table.Value]struct{}, len(policy.Departments))
	for _, d := range policy.Departments {
		excluded[table.Text(d)] = struct{}{}
	}
	checkDept := policy.Column != "" && len(excluded) > 0 && t.HasColumn(policy.Column)

	kept := make([]table.Row, 0, t.Len())
	for _, row := range t.Rows {
		if row.Get(keyColumn).IsNull() {
			stats.NullKey++
			continue
		}
		if checkDept {
			if _, drop := excluded[row.Get(policy.Column)]; drop {
				stats.Excluded++
				continue
			}
		}
		kept = append(kept, row)
	}

	return t.WithRows(kept), stats
}
