package book

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Placeholder values used when a directory name carries no usable identity.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
)

// Identity holds the book-level metadata derived once per run.
type Identity struct {
	Title  string
	Author string
}

// Parse derives an Identity from a directory naming token following the
// TitleWords_AuthorWords convention. Only the final path segment is
// considered. The first underscore-delimited segment becomes the title, the
// second (when present) the author; further segments are ignored.
//
// Words are assumed already capitalized in the token; Parse inserts spaces at
// word boundaries but never re-cases anything. An empty token yields the
// Unknown placeholders. A token without an author segment yields an empty
// Author.
func Parse(name string) Identity {
	if strings.TrimSpace(name) == "" {
		return Identity{Title: UnknownTitle, Author: UnknownAuthor}
	}

	segment := filepath.Base(filepath.ToSlash(name))
	parts := strings.Split(segment, "_")

	id := Identity{}
	if len(parts) > 0 {
		id.Title = formatTitle(parts[0])
	}
	if len(parts) > 1 {
		id.Author = addSpaces(parts[1])
	}
	return id
}

// addSpaces inserts a single space at every lowercase-to-uppercase boundary.
func addSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsLower(prev) && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.TrimSpace(b.String())
}

// formatTitle applies addSpaces plus two extra word boundaries that only
// matter for titles: a digit immediately followed by an uppercase letter, and
// an uppercase letter that starts a new capitalized word right after another
// uppercase letter ("2001ASpaceOdyssey" -> "2001 A Space Odyssey").
func formatTitle(s string) string {
	runes := []rune(addSpaces(s))
	var b strings.Builder
	b.Grow(len(runes) + 8)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// OutputBaseName returns the "<Title> - <Author>" stem used for the bound
// audiobook file. The author part is dropped when unknown.
func (id Identity) OutputBaseName() string {
	if id.Author == "" {
		return id.Title
	}
	return id.Title + " - " + id.Author
}
