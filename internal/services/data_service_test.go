package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbmcli/internal/dataprocessing"
	"cbmcli/internal/errors"
)

// lineCodec decodes newline/comma separated text so the service can be
// exercised without real workbook fixtures.
type lineCodec struct{}

func (lineCodec) Rows(content []byte) ([][]string, error) {
	text := strings.TrimSpace(string(content))
	if strings.HasPrefix(text, "bad") {
		return nil, assert.AnError
	}
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		rows = append(rows, strings.Split(line, ","))
	}
	return rows, nil
}

func newTestService(t *testing.T) *DataService {
	t.Helper()
	loader := dataprocessing.NewLoader(lineCodec{}, nil)
	return NewDataService(loader, nil, 2)
}

const (
	vessel1Export = "DATE,TIME,TEMP\n2024-01-02,08:00:00,20\n2024-01-01,08:00:00,10"
	vessel2Export = "DATE,TIME,PRESSURE\n2024-01-03,09:00:00,5"
)

func TestIngestFile(t *testing.T) {
	s := newTestService(t)

	src, err := s.IngestFile(context.Background(), []byte(vessel1Export), "Vessel1 CBM_March.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "Vessel1 CBM_March.xlsx", src.Filename)
	assert.Equal(t, "Vessel1", src.Vessel)
	assert.Equal(t, 2, src.Rows)

	unified := s.Unified()
	require.Equal(t, 2, unified.Len())
	// Rows come back chronologically sorted.
	assert.Equal(t, []float64{10, 20}, unified.NumericValues("TEMP"))
	assert.Equal(t, "Vessel1", unified.Rows[0]["VESSEL_NAME"])
}

func TestIngestFile_MergesSources(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.IngestFile(ctx, []byte(vessel1Export), "Vessel1 CBM.xlsx")
	require.NoError(t, err)
	_, err = s.IngestFile(ctx, []byte(vessel2Export), "Vessel2 CBM.xlsx")
	require.NoError(t, err)

	unified := s.Unified()
	assert.Equal(t, 3, unified.Len())
	assert.True(t, unified.HasColumn("TEMP"))
	assert.True(t, unified.HasColumn("PRESSURE"))

	// The second vessel never measured TEMP, so its rows fill with zero.
	assert.Equal(t, []float64{10, 20, 0}, unified.NumericValues("TEMP"))

	sources := s.Sources()
	require.Len(t, sources, 2)
	assert.Equal(t, "Vessel1", sources[0].Vessel)
	assert.Equal(t, "Vessel2", sources[1].Vessel)
}

func TestIngestFile_LoadError(t *testing.T) {
	s := newTestService(t)

	_, err := s.IngestFile(context.Background(), []byte("bad content"), "broken.xlsx")
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
	assert.Contains(t, err.Error(), "broken.xlsx")

	assert.Empty(t, s.Sources())
	assert.Equal(t, 0, s.Unified().Len())
}

func TestIngestDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	write("Vessel1 CBM_March.xlsx", vessel1Export)
	write("Vessel2 CBM_April.xlsx", vessel2Export)
	write("broken CBM.xlsx", "bad content")
	write("ignored.txt", "not a spreadsheet")

	s := newTestService(t)
	results, err := s.IngestDir(context.Background(), dir)
	require.NoError(t, err)

	// One result per discovered export, in name order; the bad file is
	// reported, not raised.
	require.Len(t, results, 3)
	assert.Equal(t, "Vessel1 CBM_March.xlsx", results[0].Filename)
	assert.Equal(t, 2, results[0].Rows)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, "Vessel2 CBM_April.xlsx", results[1].Filename)

	assert.Equal(t, "broken CBM.xlsx", results[2].Filename)
	assert.NotEmpty(t, results[2].Error)

	assert.Equal(t, 3, s.Unified().Len())
	assert.Len(t, s.Sources(), 2)
}

func TestIngestDir_MissingDir(t *testing.T) {
	s := newTestService(t)
	_, err := s.IngestDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	s := newTestService(t)
	_, err := s.IngestFile(context.Background(), []byte(vessel1Export), "Vessel1 CBM.xlsx")
	require.NoError(t, err)

	s.Reset()

	assert.Empty(t, s.Sources())
	assert.Equal(t, 0, s.Unified().Len())
}

func TestUnified_ReturnsCopy(t *testing.T) {
	s := newTestService(t)
	_, err := s.IngestFile(context.Background(), []byte(vessel1Export), "Vessel1 CBM.xlsx")
	require.NoError(t, err)

	copy1 := s.Unified()
	copy1.Rows[0]["TEMP"] = 999.0

	copy2 := s.Unified()
	assert.Equal(t, 10.0, copy2.Rows[0]["TEMP"])
}

func TestQueries(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, err := s.IngestFile(ctx, []byte(vessel1Export), "Vessel1 CBM.xlsx")
	require.NoError(t, err)
	_, err = s.IngestFile(ctx, []byte(vessel2Export), "Vessel2 CBM.xlsx")
	require.NoError(t, err)

	stats := s.Summary(ctx)
	assert.Equal(t, map[string]int{"Vessel1": 2, "Vessel2": 1}, stats.VesselCounts)

	filtered := s.Filter(ctx, map[string]any{"VESSEL_NAME": "Vessel1"})
	assert.Equal(t, 2, filtered.Len())

	series := s.TimeSeries(ctx, "TEMP", "")
	require.Contains(t, series, "Vessel1")
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, series["Vessel1"].Timestamps)

	matrix := s.Correlation(ctx, []string{"TEMP", "PRESSURE"})
	assert.Len(t, matrix, 2)

	categories := s.Categories(ctx)
	assert.Contains(t, categories["metadata"], "TIMESTAMP")
}
