package chapters

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// SourceFile is one chapter's source audio, with its externally probed
// duration already resolved.
type SourceFile struct {
	Name            string
	DurationSeconds float64
}

// Chapter marks one entry in the output timeline. The final chapter of a
// timeline has no defined end and carries EndMillis == -1; downstream
// consumers treat it as extending to end-of-stream.
type Chapter struct {
	Title       string
	StartMillis int64
	EndMillis   int64
}

// OpenEnded reports whether the chapter has no defined end boundary.
func (c Chapter) OpenEnded() bool {
	return c.EndMillis < 0
}

// Build converts an ordered sequence of source files into a chapter timeline.
//
// Files must already be sorted lexicographically by name; Build performs no
// reordering. Each file's duration is floored to a whole number of seconds
// before it advances the cursor. This discards sub-second precision at every
// step, not just at the end, and must not be "fixed": the accumulated starts
// are the contract with the muxing backend.
//
// Every chapter end is trimmed by one millisecond against the next chapter's
// start so consumers that treat ranges as closed intervals never see a
// boundary owned by two chapters.
func Build(files []SourceFile, titleSeparator string) ([]Chapter, error) {
	if len(files) == 0 {
		return nil, ErrEmptyInput
	}

	chs := make([]Chapter, 0, len(files))
	var cursor int64
	for _, file := range files {
		if file.DurationSeconds < 0 || math.IsNaN(file.DurationSeconds) || math.IsInf(file.DurationSeconds, 0) {
			return nil, fmt.Errorf("%w: %s reported %v seconds", ErrInvalidDuration, file.Name, file.DurationSeconds)
		}
		chs = append(chs, Chapter{
			Title:       chapterTitle(file.Name, titleSeparator),
			StartMillis: cursor * 1000,
			EndMillis:   -1,
		})
		cursor += int64(file.DurationSeconds)
	}

	for i := 0; i < len(chs)-1; i++ {
		chs[i].EndMillis = chs[i+1].StartMillis - 1
	}
	return chs, nil
}

// chapterTitle extracts a chapter title from a file name. With a non-empty
// separator that occurs in the base name, everything after the first
// occurrence becomes the title (the separator is re-joined when it occurs
// again later). Otherwise the title is the base name without its extension.
func chapterTitle(name, separator string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if separator == "" || !strings.Contains(base, separator) {
		return base
	}
	parts := strings.Split(base, separator)
	return strings.Join(parts[1:], separator)
}
