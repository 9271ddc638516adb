// Package config loads application configuration from environment
// variables (prefix CBM) with an optional YAML file overlay, and resolves
// the filesystem layout for uploads and generated reports.
package config
