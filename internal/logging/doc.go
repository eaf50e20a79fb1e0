// Package logging assembles structured slog loggers and formatting helpers used
// across dmg-license.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and stamps run IDs, command names, and image paths carried on the
// context onto every record. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
package logging
