package dataprocessing

import (
	"log/slog"
	"time"

	"cbmcli/internal/dataset"
)

// timestampLayouts are the combined date-time forms accepted when parsing
// a synthesized "<date> <time>" string.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// SynthesizeTimestamp derives the TIMESTAMP column by combining DATE and
// TIME. When either source column is absent the step is skipped and no
// TIMESTAMP column is added. A row whose combination fails to parse keeps
// a null timestamp; the row is retained.
func SynthesizeTimestamp(rs *dataset.RecordSet) *dataset.RecordSet {
	if !rs.HasColumn("DATE") || !rs.HasColumn("TIME") {
		return rs
	}

	rs.AddColumn(dataset.Column{Name: "TIMESTAMP", Kind: dataset.KindTemporal}, nil)

	failed := 0
	for _, row := range rs.Rows {
		ts, ok := combine(row["DATE"], row["TIME"])
		if !ok {
			failed++
			continue
		}
		row["TIMESTAMP"] = ts
	}

	if failed > 0 {
		slog.Warn("rows kept with null timestamp",
			slog.Int("failed", failed),
			slog.Int("total", rs.Len()))
	}
	return rs
}

// combine renders DATE as an ISO calendar date, appends the TIME cell's
// text separated by a space, and parses the result.
func combine(date, clock any) (time.Time, bool) {
	var day string
	switch d := date.(type) {
	case time.Time:
		day = d.Format("2006-01-02")
	case string:
		if d == "" {
			return time.Time{}, false
		}
		t, ok := parseDate(d)
		if !ok {
			return time.Time{}, false
		}
		day = t.Format("2006-01-02")
	default:
		return time.Time{}, false
	}

	stamp := day
	if clockText := dataset.Text(clock); clockText != "" {
		stamp = day + " " + clockText
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, stamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
