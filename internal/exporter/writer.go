package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cbmcli/internal/config"
	"cbmcli/internal/dataset"
)

// Writer persists serialized RecordSets into the reports directory for
// the batch CLI.
type Writer struct {
	paths *config.Paths
}

// NewWriter creates a new report writer instance
func NewWriter(paths *config.Paths) *Writer {
	return &Writer{paths: paths}
}

// WriteJSON writes the RecordSet as a JSON report file
func (w *Writer) WriteJSON(rs *dataset.RecordSet, filename string) error {
	data, err := JSON(rs)
	if err != nil {
		return err
	}
	return w.write(filename, data)
}

// WriteCSV writes the RecordSet as a CSV report file
func (w *Writer) WriteCSV(rs *dataset.RecordSet, filename string) error {
	data, err := CSV(rs)
	if err != nil {
		return err
	}
	return w.write(filename, data)
}

// WriteExcel writes the RecordSet as an .xlsx report file
func (w *Writer) WriteExcel(rs *dataset.RecordSet, filename string) error {
	data, err := Excel(rs)
	if err != nil {
		return err
	}
	return w.write(filename, data)
}

func (w *Writer) write(filename string, data []byte) error {
	fullPath := w.paths.GetReportPath(filename)

	slog.Info("writing report file",
		slog.String("path", fullPath),
		slog.Int("bytes", len(data)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fullPath, err)
	}
	return nil
}
