package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/simonhull/audiometa"
)

// FromTags reads the embedded tags of an audio file and maps them onto an
// Identity. Audiobook rips conventionally store the book title in the album
// tag and the author in the artist tag, so those take precedence over the
// track-level title field.
func FromTags(ctx context.Context, path string) (Identity, error) {
	file, err := audiometa.OpenContext(ctx, path)
	if err != nil {
		return Identity{}, fmt.Errorf("read tags from %s: %w", path, err)
	}
	defer file.Close()

	id := Identity{
		Title:  strings.TrimSpace(file.Tags.Album),
		Author: strings.TrimSpace(file.Tags.Artist),
	}
	if id.Title == "" {
		id.Title = strings.TrimSpace(file.Tags.Title)
	}
	if id.Author == "" {
		id.Author = strings.TrimSpace(file.Tags.AlbumArtist)
	}
	return id, nil
}

// Merge fills the zero-value or placeholder fields of id from fallback,
// leaving explicitly derived values untouched.
func Merge(id, fallback Identity) Identity {
	if (id.Title == "" || id.Title == UnknownTitle) && fallback.Title != "" {
		id.Title = fallback.Title
	}
	if (id.Author == "" || id.Author == UnknownAuthor) && fallback.Author != "" {
		id.Author = fallback.Author
	}
	return id
}
