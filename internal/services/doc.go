// Package services orchestrates the data pipeline for the HTTP surface
// and the batch CLI: per-file ingestion, merging into the unified
// dataset, and read-only delegation to the query layer.
package services
