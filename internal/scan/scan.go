package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions is the audio extension filter applied when the
// configuration does not override it.
var DefaultExtensions = []string{".mp3"}

// DefaultCoverCandidates lists the cover art file names checked in priority
// order; the first match wins.
var DefaultCoverCandidates = []string{"cover.jpg", "cover.png"}

// ListAudioFiles returns the audio file names in dir matching the extension
// filter, sorted lexicographically by byte order. Chapter ordering depends
// entirely on this sort matching the intended sequence; no semantic
// reordering happens anywhere downstream.
func ListAudioFiles(dir string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list audio files: %w", err)
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := allowed[ext]; ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// FindCoverImage checks the fixed candidate names in dir in priority order
// and returns the path of the first one that exists, or "" when the book has
// no cover art.
func FindCoverImage(dir string, candidates []string) string {
	if len(candidates) == 0 {
		candidates = DefaultCoverCandidates
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
