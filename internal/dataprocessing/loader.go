package dataprocessing

import (
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cbmcli/internal/dataset"
	"cbmcli/internal/errors"
)

// vesselMarker separates the vessel name from the rest of a CBM export
// filename, e.g. "Vessel1 CBM_March.xlsx".
const vesselMarker = " CBM"

// dateLayouts are the calendar-date forms accepted when inferring a
// temporal column and when parsing its cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-06",
}

// Loader decodes one uploaded spreadsheet into a RecordSet and tags it
// with the vessel identifier parsed from its filename.
type Loader struct {
	codec  Codec
	logger *slog.Logger
}

// NewLoader creates a loader. A nil codec defaults to the excelize-backed
// ExcelCodec; a nil logger defaults to slog.Default.
func NewLoader(codec Codec, logger *slog.Logger) *Loader {
	if codec == nil {
		codec = ExcelCodec{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{codec: codec, logger: logger}
}

// Load decodes content into a RecordSet, appends the VESSEL_NAME column,
// and returns the vessel identifier. Decode failures return a LoadError
// carrying the filename and underlying cause.
func (l *Loader) Load(content []byte, filename string) (*dataset.RecordSet, string, error) {
	vessel := VesselName(filename)

	raw, err := l.codec.Rows(content)
	if err != nil {
		return nil, "", errors.NewLoadError(filename, err)
	}

	rs := buildRecordSet(raw)
	rs.AddColumn(dataset.Column{Name: "VESSEL_NAME", Kind: dataset.KindText}, vessel)

	l.logger.Info("loaded measurement export",
		slog.String("filename", filename),
		slog.String("vessel", vessel),
		slog.Int("rows", rs.Len()),
		slog.Int("columns", len(rs.Columns)))

	return rs, vessel, nil
}

// VesselName derives the vessel identifier from an export filename: the
// substring of the base name preceding the first " CBM" marker, or the
// whole base name when the marker is missing.
func VesselName(filename string) string {
	base := filepath.Base(filename)
	if idx := strings.Index(base, vesselMarker); idx >= 0 {
		return base[:idx]
	}
	return base
}

// buildRecordSet converts raw sheet rows into a typed RecordSet. The
// first row is the header; column kinds are inferred from the non-empty
// cells below it.
func buildRecordSet(raw [][]string) *dataset.RecordSet {
	if len(raw) == 0 {
		return dataset.New()
	}

	header := raw[0]
	body := raw[1:]

	columns := make([]dataset.Column, 0, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "COLUMN_" + strconv.Itoa(i+1)
		}
		// Repeated header names get a ".N" suffix; row cells are keyed
		// by name, so a duplicate would silently share one cell.
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n)
		}
		seen[name]++
		columns = append(columns, dataset.Column{Name: name, Kind: inferKind(body, i)})
	}

	rs := dataset.New(columns...)
	for _, cells := range body {
		row := make(dataset.Row, len(columns))
		for i, col := range columns {
			var cell string
			if i < len(cells) {
				cell = strings.TrimSpace(cells[i])
			}
			row[col.Name] = typeCell(cell, col.Kind)
		}
		rs.AddRow(row)
	}
	return rs
}

// inferKind samples the non-empty cells of one column: numeric when every
// cell parses as a float, temporal when every cell parses in a known
// calendar-date layout, text otherwise. An all-empty column is text; the
// Cleaner drops it anyway.
func inferKind(body [][]string, col int) dataset.Kind {
	numeric, temporal, seen := true, true, false
	for _, cells := range body {
		if col >= len(cells) {
			continue
		}
		cell := strings.TrimSpace(cells[col])
		if cell == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64); err != nil {
			numeric = false
		}
		if _, ok := parseDate(cell); !ok {
			temporal = false
		}
		if !numeric && !temporal {
			return dataset.KindText
		}
	}
	if !seen {
		return dataset.KindText
	}
	if numeric {
		return dataset.KindNumeric
	}
	if temporal {
		return dataset.KindTemporal
	}
	return dataset.KindText
}

// typeCell converts one cell's text into its typed value. Empty cells
// are null; cells that fail their column's conversion fall back to text.
func typeCell(cell string, kind dataset.Kind) any {
	if cell == "" {
		return nil
	}
	switch kind {
	case dataset.KindNumeric:
		if f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64); err == nil {
			return f
		}
	case dataset.KindTemporal:
		if t, ok := parseDate(cell); ok {
			return t
		}
	}
	return cell
}

// parseDate tries the known calendar-date layouts in order.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
