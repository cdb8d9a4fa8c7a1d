// Package ffmpeg wraps the ffmpeg command-line muxer: it concatenates the
// source audio files listed in the playback manifest into a single M4B
// container, embedding the chapter metadata document and optional cover art.
package ffmpeg
