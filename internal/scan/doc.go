// Package scan discovers a book's source material on disk: the ordered set
// of chapter audio files and the optional cover image.
package scan
