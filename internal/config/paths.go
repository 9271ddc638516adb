package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the filesystem layout for uploaded exports and
// generated reports.
type Paths struct {
	DataDir    string
	UploadsDir string
	ReportsDir string
}

// EnsureDirectories creates the configured directories when missing.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.UploadsDir, p.ReportsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetUploadPath returns the full path for an uploaded file
func (p *Paths) GetUploadPath(filename string) string {
	return filepath.Join(p.UploadsDir, filename)
}

// GetReportPath returns the full path for a generated report
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}
