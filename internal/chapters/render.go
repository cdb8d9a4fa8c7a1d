package chapters

import (
	"fmt"
	"strings"

	"bookbind/internal/book"
)

// RenderMetadata produces the FFMETADATA1 sidecar document consumed by the
// muxing backend: a global tag header followed by one [CHAPTER] block per
// timeline entry that has both a start and an end. The final open-ended
// chapter is deliberately not written; ffmpeg bounds playback of the last
// chapter by the end of the stream. Output is deterministic.
func RenderMetadata(chs []Chapter, id book.Identity) string {
	var b strings.Builder
	b.Grow(128 + len(chs)*64)

	b.WriteString(";FFMETADATA1\n")
	fmt.Fprintf(&b, "title=%s\n", escapeMetadataValue(id.Title))
	fmt.Fprintf(&b, "album=%s\n", escapeMetadataValue(id.Title))
	fmt.Fprintf(&b, "artist=%s\n", escapeMetadataValue(id.Author))
	fmt.Fprintf(&b, "authors=%s\n", escapeMetadataValue(id.Author))
	b.WriteString("genre=Audiobooks\n")

	for _, ch := range chs {
		if ch.OpenEnded() {
			continue
		}
		b.WriteString("[CHAPTER]\n")
		b.WriteString("TIMEBASE=1/1000\n")
		fmt.Fprintf(&b, "START=%d\n", ch.StartMillis)
		fmt.Fprintf(&b, "END=%d\n", ch.EndMillis)
		fmt.Fprintf(&b, "title=%s\n", escapeMetadataValue(ch.Title))
	}
	return b.String()
}

// RenderPlaylist produces the ordered playback manifest: one
// file '<name>' line per source file, in the order given.
func RenderPlaylist(files []SourceFile) string {
	var b strings.Builder
	b.Grow(len(files) * 32)
	for _, file := range files {
		fmt.Fprintf(&b, "file '%s'\n", escapePlaylistName(file.Name))
	}
	return b.String()
}

// escapeMetadataValue protects the characters the FFMETADATA1 format treats
// specially so titles survive a round trip through the muxing backend.
func escapeMetadataValue(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch r {
		case '=', ';', '#', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString("\\\n")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapePlaylistName terminates the quoted string around embedded single
// quotes, the ffconcat convention.
func escapePlaylistName(name string) string {
	return strings.ReplaceAll(name, "'", `'\''`)
}
