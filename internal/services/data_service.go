package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"cbmcli/internal/analytics"
	"cbmcli/internal/dataprocessing"
	"cbmcli/internal/dataset"
	"cbmcli/internal/errors"
	"cbmcli/internal/files"
)

// Source is one ingested export: its processed RecordSet plus provenance.
type Source struct {
	Filename string
	Vessel   string
	Rows     int
}

// FileResult reports the outcome of one file in a batch ingest. A failed
// file never aborts the batch.
type FileResult struct {
	Filename string `json:"filename"`
	Vessel   string `json:"vessel,omitempty"`
	Rows     int    `json:"rows"`
	Error    string `json:"error,omitempty"`
}

// DataService owns the unified dataset. Ingestion replaces it; queries
// fan out read-only. Safe for concurrent use by the HTTP handlers.
type DataService struct {
	loader *dataprocessing.Loader
	policy dataset.FillPolicy
	logger *slog.Logger

	maxConcurrentLoads int

	mu      sync.RWMutex
	sources []Source
	sets    []*dataset.RecordSet
	unified *dataset.RecordSet
}

// NewDataService creates a data service. A nil loader defaults to the
// excelize-backed one; maxConcurrentLoads <= 0 disables the bound.
func NewDataService(loader *dataprocessing.Loader, logger *slog.Logger, maxConcurrentLoads int) *DataService {
	if loader == nil {
		loader = dataprocessing.NewLoader(nil, logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		loader:             loader,
		policy:             dataset.DefaultFillPolicy(),
		logger:             logger.With(slog.String("component", "data_service")),
		maxConcurrentLoads: maxConcurrentLoads,
		unified:            dataset.New(),
	}
}

// IngestFile loads, processes, and merges one export into the unified
// dataset. Decode failures return a LoadError naming the file.
func (s *DataService) IngestFile(ctx context.Context, content []byte, filename string) (Source, error) {
	rs, vessel, err := s.loader.Load(content, filename)
	if err != nil {
		return Source{}, err
	}
	rs = dataprocessing.Process(rs, s.policy)

	src := Source{Filename: filename, Vessel: vessel, Rows: rs.Len()}

	s.mu.Lock()
	s.sources = append(s.sources, src)
	s.sets = append(s.sets, rs)
	s.unified = dataprocessing.Merge(s.sets, s.policy)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "ingested export",
		slog.String("filename", filename),
		slog.String("vessel", vessel),
		slog.Int("rows", src.Rows))

	return src, nil
}

// IngestDir discovers and ingests every spreadsheet export in dir.
// Files decode concurrently; per-file failures are reported in the
// results, not raised, so one bad export cannot sink the batch.
func (s *DataService) IngestDir(ctx context.Context, dir string) ([]FileResult, error) {
	discovery := files.NewDiscovery("")
	found, err := discovery.FindExcelFiles(dir)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to scan directory %s", dir), err)
	}

	results := make([]FileResult, len(found))

	g, ctx := errgroup.WithContext(ctx)
	if s.maxConcurrentLoads > 0 {
		g.SetLimit(s.maxConcurrentLoads)
	}

	for i, f := range found {
		i, f := i, f
		g.Go(func() error {
			content, err := os.ReadFile(f.Path)
			if err != nil {
				results[i] = FileResult{Filename: f.Name, Error: err.Error()}
				return nil
			}
			src, err := s.IngestFile(ctx, content, f.Name)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping file",
					slog.String("filename", f.Name),
					slog.String("error", err.Error()))
				results[i] = FileResult{Filename: f.Name, Error: err.Error()}
				return nil
			}
			results[i] = FileResult{Filename: src.Filename, Vessel: src.Vessel, Rows: src.Rows}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Reset discards all ingested sources and the unified dataset.
func (s *DataService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = nil
	s.sets = nil
	s.unified = dataset.New()
}

// Sources returns provenance for every ingested export.
func (s *DataService) Sources() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Source, len(s.sources))
	copy(out, s.sources)
	return out
}

// Unified returns a deep copy of the unified dataset.
func (s *DataService) Unified() *dataset.RecordSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unified.Clone()
}

// Summary computes summary statistics over the unified dataset.
func (s *DataService) Summary(ctx context.Context) analytics.SummaryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.Summary(s.unified)
}

// Filter applies a filter spec over the unified dataset.
func (s *DataService) Filter(ctx context.Context, spec analytics.FilterSpec) *dataset.RecordSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.Filter(s.unified, spec)
}

// TimeSeries extracts per-day grouped means for a target column.
func (s *DataService) TimeSeries(ctx context.Context, column, groupBy string) map[string]analytics.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.TimeSeries(s.unified, column, groupBy)
}

// Correlation computes the Pearson matrix over candidate columns.
func (s *DataService) Correlation(ctx context.Context, columns []string) map[string]map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.Correlation(s.unified, columns)
}

// Categories classifies the unified dataset's columns.
func (s *DataService) Categories(ctx context.Context) map[analytics.Category][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.Categorize(s.unified)
}
