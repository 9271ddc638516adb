package analytics

import (
	"cbmcli/internal/dataset"
)

// FilterSpec maps a column name to either a single value (equality) or a
// slice of values (membership). Constraints combine conjunctively.
type FilterSpec map[string]any

// Filter returns the subset of rows matching every active constraint.
// A spec key for a column absent from the dataset, or holding an empty
// or falsy value, imposes no constraint. The result shares column
// definitions but owns its row slice.
func Filter(rs *dataset.RecordSet, spec FilterSpec) *dataset.RecordSet {
	out := dataset.New(rs.Columns...)

	active := make(map[string]any, len(spec))
	for column, want := range spec {
		if !rs.HasColumn(column) || isEmptyConstraint(want) {
			continue
		}
		active[column] = want
	}

	for _, row := range rs.Rows {
		keep := true
		for column, want := range active {
			if !matches(row[column], want) {
				keep = false
				break
			}
		}
		if keep {
			out.AddRow(row)
		}
	}
	return out
}

// isEmptyConstraint reports whether a filter value is vacuous: nil,
// false, numeric zero, an empty string, or an empty slice. A decoded
// request carrying such a value imposes no constraint rather than
// filtering everything out.
func isEmptyConstraint(want any) bool {
	switch w := want.(type) {
	case nil:
		return true
	case bool:
		return !w
	case string:
		return w == ""
	case float64:
		return w == 0
	case int:
		return w == 0
	case int64:
		return w == 0
	case []any:
		return len(w) == 0
	case []string:
		return len(w) == 0
	case []float64:
		return len(w) == 0
	}
	return false
}

// matches tests one cell against a scalar (equality) or slice (membership).
func matches(cell, want any) bool {
	switch w := want.(type) {
	case []any:
		for _, candidate := range w {
			if equalValue(cell, candidate) {
				return true
			}
		}
		return false
	case []string:
		for _, candidate := range w {
			if equalValue(cell, candidate) {
				return true
			}
		}
		return false
	case []float64:
		for _, candidate := range w {
			if equalValue(cell, candidate) {
				return true
			}
		}
		return false
	default:
		return equalValue(cell, want)
	}
}

// equalValue compares a cell with a filter value. Values that both
// coerce to float compare numerically, so a JSON-decoded 5 matches a
// stored 5.0; everything else compares by textual form.
func equalValue(cell, want any) bool {
	cf, cok := dataset.Float(cell)
	wf, wok := dataset.Float(want)
	if cok && wok {
		return cf == wf
	}
	return dataset.Text(cell) == dataset.Text(want)
}
