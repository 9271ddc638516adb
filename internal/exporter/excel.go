package exporter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"cbmcli/internal/dataset"
)

// Excel serializes the RecordSet as a single-sheet .xlsx workbook with a
// header row and no index column. Codec I/O errors propagate unchanged.
func Excel(rs *dataset.RecordSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]any, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = col.Name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rs.Rows {
		cells := make([]any, len(rs.Columns))
		for j, col := range rs.Columns {
			cells[j] = excelValue(row[col.Name])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// excelValue renders temporal cells as ISO-8601 text so the workbook
// round-trips through the loader's kind inference.
func excelValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02T15:04:05")
	}
	return v
}
