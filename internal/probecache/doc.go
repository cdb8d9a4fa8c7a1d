// Package probecache persists ffprobe results in a SQLite database keyed by
// path, size, and mtime, so re-binding a large book skips re-probing files
// that have not changed since the last run.
package probecache
