package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSet_Columns(t *testing.T) {
	rs := New(
		Column{Name: "VESSEL_NAME", Kind: KindText},
		Column{Name: "TEMP", Kind: KindNumeric},
	)
	rs.AddRow(Row{"VESSEL_NAME": "A", "TEMP": 10.0})

	assert.True(t, rs.HasColumn("TEMP"))
	assert.False(t, rs.HasColumn("PRESSURE"))
	assert.Equal(t, []string{"VESSEL_NAME", "TEMP"}, rs.ColumnNames())

	col, ok := rs.Column("TEMP")
	require.True(t, ok)
	assert.Equal(t, KindNumeric, col.Kind)
}

func TestRecordSet_AddColumn(t *testing.T) {
	rs := New(Column{Name: "TEMP", Kind: KindNumeric})
	rs.AddRow(Row{"TEMP": 1.0})
	rs.AddRow(Row{"TEMP": 2.0})

	rs.AddColumn(Column{Name: "VESSEL_NAME", Kind: KindText}, "Vessel1")

	assert.Equal(t, []string{"TEMP", "VESSEL_NAME"}, rs.ColumnNames())
	for _, row := range rs.Rows {
		assert.Equal(t, "Vessel1", row["VESSEL_NAME"])
	}

	// Re-adding overwrites values without duplicating the column.
	rs.AddColumn(Column{Name: "VESSEL_NAME", Kind: KindText}, "Vessel2")
	assert.Equal(t, []string{"TEMP", "VESSEL_NAME"}, rs.ColumnNames())
	assert.Equal(t, "Vessel2", rs.Rows[0]["VESSEL_NAME"])
}

func TestRecordSet_DropColumn(t *testing.T) {
	rs := New(
		Column{Name: "A", Kind: KindNumeric},
		Column{Name: "B", Kind: KindText},
	)
	rs.AddRow(Row{"A": 1.0, "B": "x"})

	rs.DropColumn("A")

	assert.Equal(t, []string{"B"}, rs.ColumnNames())
	_, present := rs.Rows[0]["A"]
	assert.False(t, present)
}

func TestRecordSet_NumericValues(t *testing.T) {
	rs := New(Column{Name: "TEMP", Kind: KindNumeric})
	rs.AddRow(Row{"TEMP": 10.0})
	rs.AddRow(Row{"TEMP": nil})
	rs.AddRow(Row{"TEMP": 20.0})

	assert.Equal(t, []float64{10, 20}, rs.NumericValues("TEMP"))
}

func TestRecordSet_Clone(t *testing.T) {
	rs := New(Column{Name: "TEMP", Kind: KindNumeric})
	rs.AddRow(Row{"TEMP": 10.0})

	dup := rs.Clone()
	dup.Rows[0]["TEMP"] = 99.0
	dup.Columns[0].Name = "OTHER"

	assert.Equal(t, 10.0, rs.Rows[0]["TEMP"])
	assert.Equal(t, "TEMP", rs.Columns[0].Name)
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{"float64", 12.5, 12.5, true},
		{"int", 3, 3, true},
		{"numeric string", "42.5", 42.5, true},
		{"text string", "abc", 0, false},
		{"nil", nil, 0, false},
		{"time", time.Now(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Float(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestText(t *testing.T) {
	ts := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil renders empty", nil, ""},
		{"string passes through", "hello", "hello"},
		{"float drops trailing zeros", 10.0, "10"},
		{"float keeps fraction", 10.25, "10.25"},
		{"temporal renders ISO-8601", ts, "2024-01-01T08:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.value))
		})
	}
}

func TestFillPolicy(t *testing.T) {
	policy := DefaultFillPolicy()

	assert.Equal(t, float64(0), policy.Fill(KindNumeric))
	assert.Equal(t, "", policy.Fill(KindText))
	assert.Equal(t, "", policy.Fill(KindTemporal))

	// An unknown kind falls back to the empty string.
	assert.Equal(t, "", FillPolicy{}.Fill(KindNumeric+100))
}
