// Package analytics is the read-only query layer over the unified CBM
// dataset: summary statistics, filtering, time-series extraction, Pearson
// correlation, and column categorization.
//
// Every function is pure and total over a well-formed RecordSet. Missing
// optional columns degrade to empty results or zero defaults, never to an
// error, so the HTTP surface can call straight through without guarding.
package analytics
