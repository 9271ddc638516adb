// Package files discovers vessel CBM measurement exports on disk for the
// batch CLI: spreadsheet files in a directory, optionally grouped by the
// vessel encoded in each filename.
package files
