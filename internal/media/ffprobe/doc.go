// Package ffprobe provides a typed wrapper around ffprobe JSON output for
// audio source files.
//
// Key types:
//   - Result: parsed ffprobe output containing format metadata
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
//
// Helper methods on Result expose the two values the binder needs: the
// duration in seconds (required) and the bitrate in kbps (defaulted when the
// container does not report one).
package ffprobe
