package probecache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"bookbind/internal/probe"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "probe.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLookupMissAndSaveHit(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	modified := time.Unix(1700000000, 0)

	if _, ok, err := store.Lookup(ctx, "/books/01.mp3", 100, modified); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	entry := probe.Entry{DurationSeconds: 301.5, BitrateKbps: 192}
	if err := store.Save(ctx, "/books/01.mp3", 100, modified, entry); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Lookup(ctx, "/books/01.mp3", 100, modified)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != entry {
		t.Fatalf("Lookup = %+v, want %+v", got, entry)
	}
}

func TestLookupInvalidatedByFileChange(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	modified := time.Unix(1700000000, 0)
	entry := probe.Entry{DurationSeconds: 10, BitrateKbps: 128}

	if err := store.Save(ctx, "/books/01.mp3", 100, modified, entry); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, ok, _ := store.Lookup(ctx, "/books/01.mp3", 101, modified); ok {
		t.Fatal("size change should miss")
	}
	if _, ok, _ := store.Lookup(ctx, "/books/01.mp3", 100, modified.Add(time.Second)); ok {
		t.Fatal("mtime change should miss")
	}
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	modified := time.Unix(1700000000, 0)

	if err := store.Save(ctx, "/books/01.mp3", 100, modified, probe.Entry{DurationSeconds: 10, BitrateKbps: 128}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	updated := probe.Entry{DurationSeconds: 11, BitrateKbps: 192}
	if err := store.Save(ctx, "/books/01.mp3", 100, modified, updated); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, ok, err := store.Lookup(ctx, "/books/01.mp3", 100, modified)
	if err != nil || !ok {
		t.Fatalf("Lookup after overwrite: ok=%v err=%v", ok, err)
	}
	if got != updated {
		t.Fatalf("Lookup = %+v, want %+v", got, updated)
	}
}

func TestClearAndCount(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	modified := time.Unix(1700000000, 0)

	for _, path := range []string{"/a.mp3", "/b.mp3"} {
		if err := store.Save(ctx, path, 1, modified, probe.Entry{DurationSeconds: 1, BitrateKbps: 64}); err != nil {
			t.Fatalf("Save %s: %v", path, err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("Count = %d, want 2", count)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	count, err = store.Count(ctx)
	if err != nil {
		t.Fatalf("Count after clear: %v", err)
	}
	if count != 0 {
		t.Fatalf("Count after clear = %d, want 0", count)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "probe.db")
	modified := time.Unix(1700000000, 0)

	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Save(ctx, "/a.mp3", 1, modified, probe.Entry{DurationSeconds: 5, BitrateKbps: 96}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	_, ok, err := reopened.Lookup(ctx, "/a.mp3", 1, modified)
	if err != nil {
		t.Fatalf("Lookup after reopen: %v", err)
	}
	if !ok {
		t.Fatal("expected hit after reopen")
	}
}
