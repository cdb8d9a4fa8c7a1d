// Package book derives audiobook identity (title and author) from the
// directory naming convention TitleWords_AuthorWords, with a fallback to the
// embedded tags of the source audio files.
package book
