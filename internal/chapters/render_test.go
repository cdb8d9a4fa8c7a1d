package chapters

import (
	"strings"
	"testing"

	"bookbind/internal/book"
)

func TestRenderMetadata(t *testing.T) {
	files := []SourceFile{
		{Name: "01 - Intro.mp3", DurationSeconds: 60},
		{Name: "02 - Middle.mp3", DurationSeconds: 120},
		{Name: "03 - End.mp3", DurationSeconds: 30},
	}
	chs, err := Build(files, " - ")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	id := book.Identity{Title: "Tom Sawyer", Author: "Mark Twain"}
	got := RenderMetadata(chs, id)

	want := ";FFMETADATA1\n" +
		"title=Tom Sawyer\n" +
		"album=Tom Sawyer\n" +
		"artist=Mark Twain\n" +
		"authors=Mark Twain\n" +
		"genre=Audiobooks\n" +
		"[CHAPTER]\nTIMEBASE=1/1000\nSTART=0\nEND=59999\ntitle=Intro\n" +
		"[CHAPTER]\nTIMEBASE=1/1000\nSTART=60000\nEND=179999\ntitle=Middle\n"
	if got != want {
		t.Fatalf("unexpected metadata document:\n%s\nwant:\n%s", got, want)
	}

	// Three chapters emit exactly two blocks: the open-ended final chapter
	// is not written.
	if n := strings.Count(got, "[CHAPTER]"); n != len(chs)-1 {
		t.Fatalf("expected %d chapter blocks, got %d", len(chs)-1, n)
	}
}

func TestRenderMetadataDeterministic(t *testing.T) {
	files := []SourceFile{
		{Name: "01.mp3", DurationSeconds: 10},
		{Name: "02.mp3", DurationSeconds: 20},
	}
	chs, err := Build(files, "")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	id := book.Identity{Title: "A", Author: "B"}
	first := RenderMetadata(chs, id)
	second := RenderMetadata(chs, id)
	if first != second {
		t.Fatal("rendering the same timeline twice produced different output")
	}
}

func TestRenderMetadataEscapesSpecialCharacters(t *testing.T) {
	files := []SourceFile{
		{Name: "01 - Q=A; #1.mp3", DurationSeconds: 10},
		{Name: "02 - Next.mp3", DurationSeconds: 10},
	}
	chs, err := Build(files, " - ")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	got := RenderMetadata(chs, book.Identity{Title: "Odd=Title", Author: "X"})
	if !strings.Contains(got, "title=Odd\\=Title\n") {
		t.Errorf("header title not escaped:\n%s", got)
	}
	if !strings.Contains(got, "title=Q\\=A\\; \\#1\n") {
		t.Errorf("chapter title not escaped:\n%s", got)
	}
}

func TestRenderPlaylist(t *testing.T) {
	files := []SourceFile{
		{Name: "01 - Intro.mp3"},
		{Name: "02 - It's Here.mp3"},
	}
	got := RenderPlaylist(files)
	want := "file '01 - Intro.mp3'\n" +
		"file '02 - It'\\''s Here.mp3'\n"
	if got != want {
		t.Fatalf("unexpected playlist:\n%q\nwant:\n%q", got, want)
	}
}
