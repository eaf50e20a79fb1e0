// Package config loads, normalizes, and validates dmg-license configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and applies DMG_LICENSE_* environment
// overrides on top. Always obtain settings through this package so commands
// receive canonical log formats and clear validation errors.
package config
