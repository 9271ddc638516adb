// Package exporter serializes a RecordSet to the supported interchange
// formats: a JSON array of row objects, a delimited text table, and
// spreadsheet bytes. The serializers are pure functions over a well-formed
// RecordSet; Writer adds report-directory file output for the batch CLI.
package exporter
