// Package http exposes the CBM analytics API over chi: export upload and
// batch ingestion, summary statistics, filtering, time-series extraction,
// correlation, column categories, and dataset export. Responses render as
// JSON through chi/render; failures go through the central ErrorHandler.
package http
