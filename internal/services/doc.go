// Package services defines shared helpers consumed by the library
// synchronizer and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp album names, operation stages, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that let batch outcomes
//     report a stable failure kind (duplicate file, decode failure, metadata
//     write failure).
//
// Wrap failures with one of the exported markers so Kind can classify them
// without string matching.
package services
