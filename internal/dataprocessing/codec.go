package dataprocessing

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Codec decodes raw spreadsheet bytes into rows of cell text. The core
// pipeline only depends on this narrow boundary, so it stays unit-testable
// with in-memory fixtures while production ingestion uses excelize.
type Codec interface {
	Rows(content []byte) ([][]string, error)
}

// ExcelCodec reads .xlsx content via excelize, returning the rows of the
// workbook's first sheet.
type ExcelCodec struct{}

// Rows implements Codec.
func (ExcelCodec) Rows(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
