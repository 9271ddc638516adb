package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Kind classifies a column's values. It is inferred once at load time and
// determines the null-fill policy and eligibility for numeric aggregation.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindTemporal
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindTemporal:
		return "temporal"
	default:
		return "text"
	}
}

// Column describes a named, kinded column of a RecordSet.
type Column struct {
	Name string
	Kind Kind
}

// Row maps column names to cell values. A cell holds float64, time.Time,
// string, or nil for a null.
type Row map[string]any

// RecordSet is the core tabular value type: ordered rows over named,
// kinded columns. Column identity is name-based.
type RecordSet struct {
	Columns []Column
	Rows    []Row
}

// New creates an empty RecordSet with the given columns.
func New(columns ...Column) *RecordSet {
	return &RecordSet{Columns: columns}
}

// Len returns the number of rows.
func (rs *RecordSet) Len() int {
	return len(rs.Rows)
}

// HasColumn reports whether a column with the given name exists.
func (rs *RecordSet) HasColumn(name string) bool {
	_, ok := rs.Column(name)
	return ok
}

// Column returns the column definition for name.
func (rs *RecordSet) Column(name string) (Column, bool) {
	for _, c := range rs.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in declaration order.
func (rs *RecordSet) ColumnNames() []string {
	names := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		names[i] = c.Name
	}
	return names
}

// AddColumn appends a column definition and sets value on every existing
// row. Adding an existing column overwrites its values and keeps its
// position.
func (rs *RecordSet) AddColumn(col Column, value any) {
	if !rs.HasColumn(col.Name) {
		rs.Columns = append(rs.Columns, col)
	}
	for _, row := range rs.Rows {
		row[col.Name] = value
	}
}

// DropColumn removes a column and its values from every row.
func (rs *RecordSet) DropColumn(name string) {
	for i, c := range rs.Columns {
		if c.Name == name {
			rs.Columns = append(rs.Columns[:i], rs.Columns[i+1:]...)
			break
		}
	}
	for _, row := range rs.Rows {
		delete(row, name)
	}
}

// AddRow appends a row. Cells for columns not present in the row are
// left null.
func (rs *RecordSet) AddRow(row Row) {
	rs.Rows = append(rs.Rows, row)
}

// NumericColumns returns the names of all numeric-kind columns in order.
func (rs *RecordSet) NumericColumns() []string {
	var names []string
	for _, c := range rs.Columns {
		if c.Kind == KindNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// NumericValues returns every non-null value of a numeric column coerced
// to float64, in row order.
func (rs *RecordSet) NumericValues(name string) []float64 {
	values := make([]float64, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		v := row[name]
		if v == nil {
			continue
		}
		f, ok := Float(v)
		if !ok {
			continue
		}
		values = append(values, f)
	}
	return values
}

// Clone returns a deep copy. Query-layer callers fan out read-only over
// the unified dataset; transforms that need a scratch copy clone first.
func (rs *RecordSet) Clone() *RecordSet {
	out := &RecordSet{
		Columns: make([]Column, len(rs.Columns)),
		Rows:    make([]Row, len(rs.Rows)),
	}
	copy(out.Columns, rs.Columns)
	for i, row := range rs.Rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		out.Rows[i] = dup
	}
	return out
}

// SortStableBy stable-sorts rows by the given less function.
func (rs *RecordSet) SortStableBy(less func(a, b Row) bool) {
	sort.SliceStable(rs.Rows, func(i, j int) bool {
		return less(rs.Rows[i], rs.Rows[j])
	})
}

// Float coerces a cell value to float64. Strings are parsed; temporal and
// nil values do not coerce.
func Float(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Text coerces a cell value to its textual form. Temporal values render
// as ISO-8601, nulls as the empty string.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format("2006-01-02T15:04:05")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Temporal extracts a cell's time.Time value.
func Temporal(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}
