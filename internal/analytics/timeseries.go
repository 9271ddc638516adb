package analytics

import (
	"sort"

	"cbmcli/internal/dataset"
)

// DefaultGroupColumn partitions time-series aggregation when the caller
// does not name a grouping column.
const DefaultGroupColumn = "VESSEL_NAME"

// fallbackGroup names the single series produced when the grouping
// column is absent from the dataset.
const fallbackGroup = "all"

// Series is an aligned pair of ascending calendar days and per-day mean
// values for one group.
type Series struct {
	Timestamps []string  `json:"timestamps"`
	Values     []float64 `json:"values"`
}

// TimeSeries groups rows by calendar day of TIMESTAMP and by groupBy,
// computing the mean of column per group per day. An empty groupBy falls
// back to VESSEL_NAME; a groupBy absent from the dataset yields a single
// "all" series. Missing TIMESTAMP or target column yields an empty map.
func TimeSeries(rs *dataset.RecordSet, column, groupBy string) map[string]Series {
	if groupBy == "" {
		groupBy = DefaultGroupColumn
	}
	if !rs.HasColumn("TIMESTAMP") || !rs.HasColumn(column) {
		return map[string]Series{}
	}
	grouped := rs.HasColumn(groupBy)

	type acc struct {
		sum   float64
		count int
	}
	buckets := make(map[string]map[string]*acc)

	for _, row := range rs.Rows {
		t, ok := dataset.Temporal(row["TIMESTAMP"])
		if !ok {
			continue
		}
		v, ok := dataset.Float(row[column])
		if !ok {
			continue
		}

		group := fallbackGroup
		if grouped {
			group = dataset.Text(row[groupBy])
		}
		day := t.Format("2006-01-02")

		if buckets[group] == nil {
			buckets[group] = make(map[string]*acc)
		}
		if buckets[group][day] == nil {
			buckets[group][day] = &acc{}
		}
		buckets[group][day].sum += v
		buckets[group][day].count++
	}

	result := make(map[string]Series, len(buckets))
	for group, days := range buckets {
		keys := make([]string, 0, len(days))
		for day := range days {
			keys = append(keys, day)
		}
		sort.Strings(keys)

		series := Series{
			Timestamps: keys,
			Values:     make([]float64, len(keys)),
		}
		for i, day := range keys {
			a := days[day]
			series.Values[i] = a.sum / float64(a.count)
		}
		result[group] = series
	}
	return result
}
