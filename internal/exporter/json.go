package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"cbmcli/internal/dataset"
)

// JSON serializes the RecordSet as an array of row objects in column
// order, with temporal values rendered as ISO-8601 strings and null
// cells as JSON null.
func JSON(rs *dataset.RecordSet) ([]byte, error) {
	records := make([]map[string]any, 0, rs.Len())
	for _, row := range rs.Rows {
		obj := make(map[string]any, len(rs.Columns))
		for _, col := range rs.Columns {
			obj[col.Name] = jsonValue(row[col.Name])
		}
		records = append(records, obj)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func jsonValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02T15:04:05")
	}
	return v
}
