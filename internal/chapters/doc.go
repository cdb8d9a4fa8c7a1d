// Package chapters builds the chapter timeline for a bound audiobook and
// renders the two textual artifacts the muxing backend consumes: the ordered
// playback manifest and the FFMETADATA1 chapter document.
package chapters
