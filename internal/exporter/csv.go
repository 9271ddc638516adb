package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"cbmcli/internal/dataset"
)

// CSV serializes the RecordSet as a comma-separated table: one header
// row of column names, then one row per record, no index column.
func CSV(rs *dataset.RecordSet) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(rs.ColumnNames()); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(rs.Columns))
	for i, row := range rs.Rows {
		for j, col := range rs.Columns {
			record[j] = dataset.Text(row[col.Name])
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
