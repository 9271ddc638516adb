package dataprocessing

import (
	"cbmcli/internal/dataset"
)

// Process runs the per-source transform: clean, synthesize timestamps,
// then stable-sort chronologically when a TIMESTAMP column exists. Rows
// with a null timestamp sort after all dated rows.
func Process(rs *dataset.RecordSet, policy dataset.FillPolicy) *dataset.RecordSet {
	rs = Clean(rs, policy)
	rs = SynthesizeTimestamp(rs)

	if rs.HasColumn("TIMESTAMP") {
		rs.SortStableBy(func(a, b dataset.Row) bool {
			ta, aok := dataset.Temporal(a["TIMESTAMP"])
			tb, bok := dataset.Temporal(b["TIMESTAMP"])
			if !aok {
				return false
			}
			if !bok {
				return true
			}
			return ta.Before(tb)
		})
	}
	return rs
}

// Merge concatenates processed RecordSets into the unified dataset. Row
// order within and across sources is preserved; the column set is the
// union in first-seen order. Cells for columns a source never had are
// filled per the policy, matching the Cleaner's null handling.
func Merge(sets []*dataset.RecordSet, policy dataset.FillPolicy) *dataset.RecordSet {
	merged := dataset.New()
	for _, rs := range sets {
		for _, col := range rs.Columns {
			if !merged.HasColumn(col.Name) {
				merged.Columns = append(merged.Columns, col)
			}
		}
	}

	for _, rs := range sets {
		for _, row := range rs.Rows {
			out := make(dataset.Row, len(merged.Columns))
			for _, col := range merged.Columns {
				if v, ok := row[col.Name]; ok {
					// A null here survived the per-source clean on
					// purpose (an unparsable timestamp); keep it.
					out[col.Name] = v
				} else {
					out[col.Name] = policy.Fill(col.Kind)
				}
			}
			merged.AddRow(out)
		}
	}
	return merged
}
