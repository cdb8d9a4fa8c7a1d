// Package probe resolves per-file durations and bitrates through the
// external prober, with optional caching and bounded parallel fan-out, and
// selects the output bitrate from the observed values.
package probe
