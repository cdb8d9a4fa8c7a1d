// Package binding orchestrates the bind pipeline: it scans the book
// directory, resolves identity and per-file properties, builds the chapter
// timeline, renders the muxing artifacts, and drives the external muxer.
// The whole plan is derived in memory before anything is written.
package binding
