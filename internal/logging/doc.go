// Package logging wires log/slog with the repository's console and JSON
// handlers and provides shared attribute helpers.
package logging
