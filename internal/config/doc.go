// Package config loads, normalizes, and validates bookbind configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/bookbind/config.toml or a
// project-local bookbind.toml. Always obtain settings through this package so
// downstream code receives sanitized paths, a canonical encoder name, and
// clear validation errors.
package config
