package analytics

import (
	"strings"

	"cbmcli/internal/dataset"
)

// Category is one of the fixed classification buckets for dataset columns.
type Category string

const (
	CategoryMetadata  Category = "metadata"
	CategoryVibration Category = "vibration"
	CategoryBearing   Category = "bearing"
	CategoryShaft     Category = "shaft"
	CategoryOther     Category = "other"
)

// categoryRule pairs a bucket with its match predicate. Rules run in
// order and the first match wins, which keeps the classification total
// and the precedence explicit.
type categoryRule struct {
	category Category
	match    func(name string) bool
}

// metadataColumns is the closed list of well-known non-measurement
// fields.
var metadataColumns = map[string]bool{
	"MP_NUMBER":   true,
	"MP_NAME":     true,
	"COMP_NUMBER": true,
	"COMP_NAME":   true,
	"VESSEL_NAME": true,
	"DATE":        true,
	"TIME":        true,
	"TIMESTAMP":   true,
}

// categoryRules matches are case-sensitive substrings; "Cuscinetto" is
// the Italian bearing naming used by some sensor vendors.
var categoryRules = []categoryRule{
	{CategoryMetadata, func(name string) bool { return metadataColumns[name] }},
	{CategoryVibration, containsAny("Vib", "Vel", "Acc", "Disp")},
	{CategoryBearing, containsAny("Bearing", "Cuscinetto")},
	{CategoryShaft, containsAny("Shaft")},
}

// Categorize classifies every column of the dataset into exactly one
// bucket. Every bucket key is present in the result, empty when nothing
// matched.
func Categorize(rs *dataset.RecordSet) map[Category][]string {
	result := map[Category][]string{
		CategoryMetadata:  {},
		CategoryVibration: {},
		CategoryBearing:   {},
		CategoryShaft:     {},
		CategoryOther:     {},
	}

	for _, name := range rs.ColumnNames() {
		cat := classify(name)
		result[cat] = append(result[cat], name)
	}
	return result
}

// classify resolves one column name through the ordered rule list.
func classify(name string) Category {
	for _, rule := range categoryRules {
		if rule.match(name) {
			return rule.category
		}
	}
	return CategoryOther
}

func containsAny(substrings ...string) func(string) bool {
	return func(name string) bool {
		for _, s := range substrings {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}
