// Package services defines shared utilities consumed by the workflow manager,
// the store, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp article IDs, stage names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (not found, validation, conflict) with errors.Is.
package services
