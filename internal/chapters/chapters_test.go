package chapters

import (
	"errors"
	"fmt"
	"testing"
)

func TestBuildTimeline(t *testing.T) {
	files := []SourceFile{
		{Name: "01 - Intro.mp3", DurationSeconds: 12.9},
		{Name: "02 - The River.mp3", DurationSeconds: 300.2},
		{Name: "03 - The Cave.mp3", DurationSeconds: 181.0},
	}

	chs, err := Build(files, " - ")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(chs) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(chs))
	}

	// Durations floor to 12, 300, 181 whole seconds before accumulating.
	wantStarts := []int64{0, 12000, 312000}
	wantTitles := []string{"Intro", "The River", "The Cave"}
	for i, ch := range chs {
		if ch.StartMillis != wantStarts[i] {
			t.Errorf("chapter %d start = %d, want %d", i, ch.StartMillis, wantStarts[i])
		}
		if ch.Title != wantTitles[i] {
			t.Errorf("chapter %d title = %q, want %q", i, ch.Title, wantTitles[i])
		}
	}

	for i := 0; i < len(chs)-1; i++ {
		if chs[i].EndMillis != chs[i+1].StartMillis-1 {
			t.Errorf("chapter %d end = %d, want %d", i, chs[i].EndMillis, chs[i+1].StartMillis-1)
		}
		if chs[i].OpenEnded() {
			t.Errorf("chapter %d unexpectedly open ended", i)
		}
	}
	if !chs[len(chs)-1].OpenEnded() {
		t.Error("final chapter should be open ended")
	}
}

func TestBuildMonotonicStarts(t *testing.T) {
	var files []SourceFile
	for i := 0; i < 40; i++ {
		files = append(files, SourceFile{
			Name:            fmt.Sprintf("%02d.mp3", i+1),
			DurationSeconds: 59.7 + float64(i),
		})
	}

	chs, err := Build(files, "")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	for i := 1; i < len(chs); i++ {
		if chs[i].StartMillis <= chs[i-1].StartMillis {
			t.Fatalf("starts not strictly increasing at %d: %d then %d", i, chs[i-1].StartMillis, chs[i].StartMillis)
		}
		if chs[i-1].EndMillis != chs[i].StartMillis-1 {
			t.Fatalf("gap between chapters %d and %d", i-1, i)
		}
	}
}

func TestBuildEmptyInput(t *testing.T) {
	if _, err := Build(nil, ""); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestBuildRejectsInvalidDurations(t *testing.T) {
	files := []SourceFile{{Name: "01.mp3", DurationSeconds: -4}}
	_, err := Build(files, "")
	if !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestChapterTitleExtraction(t *testing.T) {
	cases := []struct {
		name      string
		separator string
		want      string
	}{
		{name: "01 - Intro.mp3", separator: " - ", want: "Intro"},
		{name: "01 - Intro.mp3", separator: "", want: "01 - Intro"},
		{name: "01 - Intro - Reprise.mp3", separator: " - ", want: "Intro - Reprise"},
		{name: "01_Intro.mp3", separator: " - ", want: "01_Intro"},
		{name: "Prologue.mp3", separator: "", want: "Prologue"},
	}
	for _, tc := range cases {
		files := []SourceFile{{Name: tc.name, DurationSeconds: 10}}
		chs, err := Build(files, tc.separator)
		if err != nil {
			t.Fatalf("Build(%q) returned error: %v", tc.name, err)
		}
		if chs[0].Title != tc.want {
			t.Errorf("title for %q with separator %q = %q, want %q", tc.name, tc.separator, chs[0].Title, tc.want)
		}
	}
}
