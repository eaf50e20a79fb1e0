// Package services defines shared utilities consumed by the CLI commands and
// the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, command names, and image paths for
//     logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into process exit codes.
//
// Subpackages wrap the external tools themselves so command execution stays
// testable behind small executor interfaces.
package services
