// Command processor runs the batch pipeline: it discovers vessel CBM
// measurement exports in a directory, ingests them into the unified
// dataset, and writes the combined data plus a summary report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"cbmcli/internal/analytics"
	"cbmcli/internal/config"
	"cbmcli/internal/exporter"
	"cbmcli/internal/services"
)

func main() {
	inDir := flag.String("in", "", "input directory for .xlsx exports (defaults to the configured uploads dir)")
	outDir := flag.String("out", "", "output directory for reports (defaults to the configured reports dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	paths := cfg.NewPaths()
	if *inDir == "" {
		*inDir = paths.UploadsDir
	}
	if *outDir != "" {
		paths.ReportsDir = *outDir
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	service := services.NewDataService(nil, logger, cfg.Processing.MaxConcurrentLoads)

	results, err := service.IngestDir(ctx, *inDir)
	if err != nil {
		logger.Error("Batch ingest failed", "error", err)
		os.Exit(1)
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
			logger.Warn("File skipped", "filename", res.Filename, "error", res.Error)
		}
	}
	logger.Info("Batch ingest complete",
		"files", len(results),
		"failed", failed)

	unified := service.Unified()
	if unified.Len() == 0 {
		logger.Warn("No rows ingested, nothing to report", "dir", *inDir)
		return
	}

	writer := exporter.NewWriter(paths)
	if err := writer.WriteCSV(unified, "combined_data.csv"); err != nil {
		logger.Error("Failed to write combined CSV", "error", err)
		os.Exit(1)
	}
	if err := writer.WriteJSON(unified, "combined_data.json"); err != nil {
		logger.Error("Failed to write combined JSON", "error", err)
		os.Exit(1)
	}
	if err := writer.WriteExcel(unified, "combined_data.xlsx"); err != nil {
		logger.Error("Failed to write combined workbook", "error", err)
		os.Exit(1)
	}
	if err := writeSummary(paths.GetReportPath("summary.json"), service.Summary(ctx), service.Categories(ctx)); err != nil {
		logger.Error("Failed to write summary", "error", err)
		os.Exit(1)
	}

	logger.Info("Reports written",
		"reports_dir", paths.ReportsDir,
		"rows", unified.Len(),
		"columns", len(unified.Columns))
}

func writeSummary(path string, stats analytics.SummaryStats, categories map[analytics.Category][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"summary":    stats,
		"categories": categories,
	})
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
