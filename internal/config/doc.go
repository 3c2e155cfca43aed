// Package config loads, normalizes, and validates photoalbum configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PHOTOALBUM_LIBRARY_DIR. The Config type centralizes every knob the CLI and
// library synchronizer need, so the library root, raster bounds, and logging
// options are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a canonical extension list, and clear validation errors.
package config
