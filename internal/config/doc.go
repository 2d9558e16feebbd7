// Package config loads, normalizes, and validates categoryassign configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CATEGORYASSIGN_DATA_DIR. Component parameters live under [components.<name>]
// tables and are handed to the workflow automation through ComponentParams, so
// the automation never reaches for global settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
