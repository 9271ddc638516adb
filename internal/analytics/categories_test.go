package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbmcli/internal/dataset"
)

func TestCategorize(t *testing.T) {
	rs := dataset.New(
		dataset.Column{Name: "VESSEL_NAME", Kind: dataset.KindText},
		dataset.Column{Name: "TIMESTAMP", Kind: dataset.KindTemporal},
		dataset.Column{Name: "Vib Overall", Kind: dataset.KindNumeric},
		dataset.Column{Name: "Peak Vel", Kind: dataset.KindNumeric},
		dataset.Column{Name: "Bearing Temp", Kind: dataset.KindNumeric},
		dataset.Column{Name: "Cuscinetto 2", Kind: dataset.KindNumeric},
		dataset.Column{Name: "Shaft RPM", Kind: dataset.KindNumeric},
		dataset.Column{Name: "Oil Pressure", Kind: dataset.KindNumeric},
	)

	got := Categorize(rs)

	assert.Equal(t, []string{"VESSEL_NAME", "TIMESTAMP"}, got[CategoryMetadata])
	assert.Equal(t, []string{"Vib Overall", "Peak Vel"}, got[CategoryVibration])
	assert.Equal(t, []string{"Bearing Temp", "Cuscinetto 2"}, got[CategoryBearing])
	assert.Equal(t, []string{"Shaft RPM"}, got[CategoryShaft])
	assert.Equal(t, []string{"Oil Pressure"}, got[CategoryOther])
}

// Every column lands in exactly one bucket, so the bucket sizes always
// sum to the column count.
func TestCategorize_Partition(t *testing.T) {
	rs := dataset.New(
		dataset.Column{Name: "DATE", Kind: dataset.KindTemporal},
		dataset.Column{Name: "Shaft Disp", Kind: dataset.KindNumeric},
		dataset.Column{Name: "Bearing Vib", Kind: dataset.KindNumeric},
		dataset.Column{Name: "Humidity", Kind: dataset.KindNumeric},
	)

	got := Categorize(rs)

	total := 0
	seen := make(map[string]bool)
	for _, names := range got {
		total += len(names)
		for _, name := range names {
			assert.False(t, seen[name], "column %s classified twice", name)
			seen[name] = true
		}
	}
	assert.Equal(t, len(rs.Columns), total)
}

// Precedence: the vibration rule outranks bearing and shaft, so a mixed
// name like "Shaft Disp" is vibration.
func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"Shaft Disp", CategoryVibration},
		{"Bearing Vib", CategoryVibration},
		{"Shaft Bearing", CategoryBearing},
		{"TIMESTAMP", CategoryMetadata},
		{"Humidity", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.name))
		})
	}
}

func TestCategorize_EmptyDataset(t *testing.T) {
	got := Categorize(dataset.New())

	require.Len(t, got, 5)
	for category, names := range got {
		assert.Empty(t, names, "category %s", category)
	}
}
