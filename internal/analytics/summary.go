package analytics

import (
	"sort"
	"time"

	"cbmcli/internal/dataset"
)

// excludedNumericColumns are numeric columns that carry identifiers, not
// measurements, and are skipped by the numeric summary.
var excludedNumericColumns = map[string]bool{
	"COMP_NUMBER": true,
}

// NumericStats holds descriptive statistics for one numeric column.
type NumericStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// DateRange is the inclusive TIMESTAMP span of a dataset in ISO-8601.
// Nil endpoints mean no valid timestamps exist.
type DateRange struct {
	Min *string `json:"min"`
	Max *string `json:"max"`
}

// SummaryStats aggregates the dataset-level descriptive statistics.
type SummaryStats struct {
	VesselCounts    map[string]int          `json:"vessel_counts,omitempty"`
	ComponentCounts map[string]int          `json:"component_counts,omitempty"`
	MPNameCounts    map[string]int          `json:"mp_name_counts,omitempty"`
	DateRange       *DateRange              `json:"date_range,omitempty"`
	NumericStats    map[string]NumericStats `json:"numeric_stats"`
}

// Summary computes row counts per distinct VESSEL_NAME, COMP_NAME, and
// MP_NAME (each only when the column exists), the inclusive TIMESTAMP
// range, and min/max/mean/median for every numeric column except the
// excluded identifier set. Undefined aggregates default to zero.
func Summary(rs *dataset.RecordSet) SummaryStats {
	stats := SummaryStats{NumericStats: make(map[string]NumericStats)}

	if rs.HasColumn("VESSEL_NAME") {
		stats.VesselCounts = valueCounts(rs, "VESSEL_NAME")
	}
	if rs.HasColumn("COMP_NAME") {
		stats.ComponentCounts = valueCounts(rs, "COMP_NAME")
	}
	if rs.HasColumn("MP_NAME") {
		stats.MPNameCounts = valueCounts(rs, "MP_NAME")
	}
	if rs.HasColumn("TIMESTAMP") {
		stats.DateRange = timestampRange(rs)
	}

	for _, name := range rs.NumericColumns() {
		if excludedNumericColumns[name] {
			continue
		}
		stats.NumericStats[name] = describe(rs.NumericValues(name))
	}
	return stats
}

// valueCounts counts rows per distinct textual value of a column.
func valueCounts(rs *dataset.RecordSet, name string) map[string]int {
	counts := make(map[string]int)
	for _, row := range rs.Rows {
		counts[dataset.Text(row[name])]++
	}
	return counts
}

// timestampRange finds the inclusive min/max over valid timestamps.
func timestampRange(rs *dataset.RecordSet) *DateRange {
	var min, max time.Time
	found := false
	for _, row := range rs.Rows {
		t, ok := dataset.Temporal(row["TIMESTAMP"])
		if !ok {
			continue
		}
		if !found || t.Before(min) {
			min = t
		}
		if !found || t.After(max) {
			max = t
		}
		found = true
	}

	r := &DateRange{}
	if found {
		lo := min.Format("2006-01-02T15:04:05")
		hi := max.Format("2006-01-02T15:04:05")
		r.Min, r.Max = &lo, &hi
	}
	return r
}

// describe computes min/max/mean/median, defaulting to zero for an empty
// column so callers never see a null aggregate.
func describe(values []float64) NumericStats {
	if len(values) == 0 {
		return NumericStats{}
	}

	s := NumericStats{Min: values[0], Max: values[0]}
	sum := 0.0
	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Mean = sum / float64(len(values))
	s.Median = median(values)
	return s
}

// median returns the middle value, averaging the two central values for
// an even count. The input slice is not modified.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
