package dataprocessing

import (
	"cbmcli/internal/dataset"
)

// Clean removes vacuous columns and fills missing values per the policy.
// A column whose every cell is null is dropped; remaining nulls are
// replaced with the policy's fill value for the column's kind. Cleaning
// an already-clean RecordSet is a no-op.
//
// Downstream aggregation relies on this: numeric columns are always
// computable and textual columns always renderable after a Clean.
func Clean(rs *dataset.RecordSet, policy dataset.FillPolicy) *dataset.RecordSet {
	var vacuous []string
	for _, col := range rs.Columns {
		if allNull(rs, col.Name) {
			vacuous = append(vacuous, col.Name)
		}
	}
	for _, name := range vacuous {
		rs.DropColumn(name)
	}

	for _, col := range rs.Columns {
		fill := policy.Fill(col.Kind)
		for _, row := range rs.Rows {
			if row[col.Name] == nil {
				row[col.Name] = fill
			}
		}
	}
	return rs
}

func allNull(rs *dataset.RecordSet, name string) bool {
	if rs.Len() == 0 {
		return false
	}
	for _, row := range rs.Rows {
		if row[name] != nil {
			return false
		}
	}
	return true
}
