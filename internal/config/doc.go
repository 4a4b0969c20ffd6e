// Package config provides configuration loading for the cricket dashboard.
//
// # Configuration Sources
//
// Configuration is layered in the following order, later sources winning:
//
//  1. Default() values
//  2. A YAML file (-config flag, else config.yaml or configs/config.yaml)
//  3. Environment variables prefixed with CRICKET_
//
// # Environment Variables
//
// Nested sections map to underscore-joined names:
//
//	CRICKET_PATHS_INPUT=data/cricketers.csv
//	CRICKET_PATHS_OUTPUT_DIR=out
//	CRICKET_CHARTS_DPI=150
//	CRICKET_LOGGING_LEVEL=debug
//	CRICKET_EXPORT_WORKBOOK=summary.xlsx
//
// # Paths
//
// ResolvePaths turns the configuration into the concrete file locations of a
// run. Chart file names are fixed; only their directory is configurable.
package config
