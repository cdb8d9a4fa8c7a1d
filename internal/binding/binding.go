package binding

import (
	"strings"

	"bookbind/internal/book"
	"bookbind/internal/chapters"
	"bookbind/internal/probe"
)

// Artifact file names written into the book directory for the muxing
// backend. Both are regenerated fresh on every run.
const (
	PlaylistFileName = "file_list.txt"
	MetadataFileName = "ffmetadata.txt"
	lockFileName     = ".bookbind.lock"
)

// Request describes one bind invocation. Zero values mean "infer from the
// file system or configuration". TitleSeparatorSet distinguishes an explicit
// empty separator (keep full file names as chapter titles) from an unset one
// that falls back to the configured separator.
type Request struct {
	Directory         string
	Title             string
	Author            string
	CoverPath         string
	Encoder           string
	BitrateKbps       int
	TitleSeparator    string
	TitleSeparatorSet bool
}

// Plan is the fully derived state for a bind run: everything is resolved and
// rendered in memory before any artifact is written.
type Plan struct {
	Directory    string
	Identity     book.Identity
	Files        []probe.Result
	Chapters     []chapters.Chapter
	CoverPath    string
	Encoder      string
	BitrateKbps  int
	Playlist     string
	Metadata     string
	PlaylistPath string
	MetadataPath string
	OutputPath   string
}

// TotalSeconds returns the summed (floored) duration of all source files.
func (p *Plan) TotalSeconds() int64 {
	var total int64
	for _, file := range p.Files {
		total += int64(file.DurationSeconds)
	}
	return total
}

// sanitizeFileName keeps derived titles usable as a file name component.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, string([]rune{0}), "")
	return strings.TrimSpace(name)
}
