package dataprocessing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbmcli/internal/dataset"
	apperrors "cbmcli/internal/errors"
)

// fakeCodec serves canned rows so loader tests run on in-memory fixtures.
type fakeCodec struct {
	rows [][]string
	err  error
}

func (c fakeCodec) Rows([]byte) ([][]string, error) {
	return c.rows, c.err
}

func TestVesselName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"marker present", "Vessel1 CBM_March.xlsx", "Vessel1"},
		{"marker with suffix", "MV Atlantic CBM Export 2024.xlsx", "MV Atlantic"},
		{"marker absent", "readings.xlsx", "readings.xlsx"},
		{"path stripped", "/tmp/uploads/Vessel2 CBM.xlsx", "Vessel2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VesselName(tt.filename))
		})
	}
}

func TestLoader_Load(t *testing.T) {
	codec := fakeCodec{rows: [][]string{
		{"DATE", "TIME", "TEMP", "MP_NAME"},
		{"2024-01-01", "08:00:00", "10.5", "Main Engine"},
		{"2024-01-02", "09:30:00", "12", "Main Engine"},
	}}

	loader := NewLoader(codec, nil)
	rs, vessel, err := loader.Load(nil, "Vessel1 CBM_March.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "Vessel1", vessel)
	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, []string{"DATE", "TIME", "TEMP", "MP_NAME", "VESSEL_NAME"}, rs.ColumnNames())

	date, ok := rs.Column("DATE")
	require.True(t, ok)
	assert.Equal(t, dataset.KindTemporal, date.Kind)

	temp, ok := rs.Column("TEMP")
	require.True(t, ok)
	assert.Equal(t, dataset.KindNumeric, temp.Kind)

	// Times of day carry no calendar date and stay textual.
	clock, ok := rs.Column("TIME")
	require.True(t, ok)
	assert.Equal(t, dataset.KindText, clock.Kind)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rs.Rows[0]["DATE"])
	assert.Equal(t, 10.5, rs.Rows[0]["TEMP"])
	assert.Equal(t, "Vessel1", rs.Rows[0]["VESSEL_NAME"])
	assert.Equal(t, "Vessel1", rs.Rows[1]["VESSEL_NAME"])
}

func TestLoader_LoadEmptyCells(t *testing.T) {
	codec := fakeCodec{rows: [][]string{
		{"TEMP", "NOTE"},
		{"10", ""},
		{"", "ok"},
	}}

	loader := NewLoader(codec, nil)
	rs, _, err := loader.Load(nil, "Vessel1 CBM.xlsx")
	require.NoError(t, err)

	assert.Nil(t, rs.Rows[0]["NOTE"])
	assert.Nil(t, rs.Rows[1]["TEMP"])
}

func TestLoader_LoadError(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	loader := NewLoader(fakeCodec{err: cause}, nil)

	_, _, err := loader.Load([]byte("garbage"), "Broken CBM.xlsx")
	require.Error(t, err)

	assert.True(t, apperrors.IsLoadError(err))
	assert.Contains(t, err.Error(), "Broken CBM.xlsx")
	assert.ErrorIs(t, err, cause)
}

func TestLoader_LoadDuplicateHeaders(t *testing.T) {
	codec := fakeCodec{rows: [][]string{
		{"TEMP", "TEMP", "TEMP"},
		{"1", "2", "3"},
	}}

	loader := NewLoader(codec, nil)
	rs, _, err := loader.Load(nil, "Vessel1 CBM.xlsx")
	require.NoError(t, err)

	// Repeated headers become distinct columns, each keeping its own cells.
	assert.Equal(t, []string{"TEMP", "TEMP.1", "TEMP.2", "VESSEL_NAME"}, rs.ColumnNames())
	assert.Equal(t, 1.0, rs.Rows[0]["TEMP"])
	assert.Equal(t, 2.0, rs.Rows[0]["TEMP.1"])
	assert.Equal(t, 3.0, rs.Rows[0]["TEMP.2"])
}

func TestExcelCodec_InvalidContent(t *testing.T) {
	_, err := ExcelCodec{}.Rows([]byte("not a spreadsheet"))
	assert.Error(t, err)
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want dataset.Kind
	}{
		{"all floats", [][]string{{"1.5"}, {"2"}}, dataset.KindNumeric},
		{"floats with gaps", [][]string{{"1.5"}, {""}, {"3"}}, dataset.KindNumeric},
		{"dates", [][]string{{"2024-01-01"}, {"2024-02-15"}}, dataset.KindTemporal},
		{"mixed falls back to text", [][]string{{"1.5"}, {"abc"}}, dataset.KindText},
		{"all empty", [][]string{{""}, {""}}, dataset.KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferKind(tt.rows, 0))
		})
	}
}
