package book

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		title  string
		author string
	}{
		{name: "title and author", input: "TomSawyer_MarkTwain", title: "Tom Sawyer", author: "Mark Twain"},
		{name: "leading numerals", input: "2001ASpaceOdyssey_ArthurCClarke", title: "2001 A Space Odyssey", author: "Arthur CClarke"},
		{name: "single segment", input: "TomSawyer", title: "Tom Sawyer", author: ""},
		{name: "extra segments ignored", input: "TomSawyer_MarkTwain_Unabridged", title: "Tom Sawyer", author: "Mark Twain"},
		{name: "full path uses last segment", input: "/books/TomSawyer_MarkTwain", title: "Tom Sawyer", author: "Mark Twain"},
		{name: "empty yields placeholders", input: "", title: UnknownTitle, author: UnknownAuthor},
		{name: "whitespace yields placeholders", input: "   ", title: UnknownTitle, author: UnknownAuthor},
		{name: "empty title segment", input: "_MarkTwain", title: "", author: "Mark Twain"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.input)
			if got.Title != tc.title {
				t.Errorf("Parse(%q).Title = %q, want %q", tc.input, got.Title, tc.title)
			}
			if got.Author != tc.author {
				t.Errorf("Parse(%q).Author = %q, want %q", tc.input, got.Author, tc.author)
			}
		})
	}
}

func TestParseDoesNotRecase(t *testing.T) {
	got := Parse("theHobbit_jrrTolkien")
	if got.Title != "the Hobbit" {
		t.Errorf("unexpected title %q", got.Title)
	}
	if got.Author != "jrr Tolkien" {
		t.Errorf("unexpected author %q", got.Author)
	}
}

func TestMerge(t *testing.T) {
	derived := Identity{Title: UnknownTitle, Author: ""}
	fallback := Identity{Title: "Dune", Author: "Frank Herbert"}
	got := Merge(derived, fallback)
	if got.Title != "Dune" || got.Author != "Frank Herbert" {
		t.Fatalf("unexpected merge result: %+v", got)
	}

	kept := Merge(Identity{Title: "Dune", Author: "Frank Herbert"}, Identity{Title: "Other", Author: "Someone"})
	if kept.Title != "Dune" || kept.Author != "Frank Herbert" {
		t.Fatalf("merge overwrote derived values: %+v", kept)
	}
}

func TestOutputBaseName(t *testing.T) {
	if got := (Identity{Title: "Tom Sawyer", Author: "Mark Twain"}).OutputBaseName(); got != "Tom Sawyer - Mark Twain" {
		t.Errorf("unexpected base name %q", got)
	}
	if got := (Identity{Title: "Tom Sawyer"}).OutputBaseName(); got != "Tom Sawyer" {
		t.Errorf("unexpected base name without author %q", got)
	}
}
