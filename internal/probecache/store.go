package probecache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"bookbind/internal/probe"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases report ErrSchemaMismatch and must be cleared.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("probe cache schema version mismatch")

// Store persists probe results in SQLite so unchanged files skip re-probing
// on subsequent runs. It satisfies probe.Cache.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the probe cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("probe cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create probe cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open probe cache: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'bookbind cache clear' or delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Lookup returns the cached entry for path when the recorded size and mtime
// still match the file on disk.
func (s *Store) Lookup(ctx context.Context, path string, size int64, modified time.Time) (probe.Entry, bool, error) {
	var (
		entry       probe.Entry
		storedSize  int64
		storedMtime int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT size_bytes, modified_unix, duration_seconds, bitrate_kbps FROM probe_results WHERE path = ?",
		path,
	).Scan(&storedSize, &storedMtime, &entry.DurationSeconds, &entry.BitrateKbps)
	if errors.Is(err, sql.ErrNoRows) {
		return probe.Entry{}, false, nil
	}
	if err != nil {
		return probe.Entry{}, false, fmt.Errorf("probe cache lookup: %w", err)
	}
	if storedSize != size || storedMtime != modified.Unix() {
		return probe.Entry{}, false, nil
	}
	return entry, true, nil
}

// Save upserts the probe result for path.
func (s *Store) Save(ctx context.Context, path string, size int64, modified time.Time, entry probe.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO probe_results (path, size_bytes, modified_unix, duration_seconds, bitrate_kbps, cached_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   size_bytes = excluded.size_bytes,
		   modified_unix = excluded.modified_unix,
		   duration_seconds = excluded.duration_seconds,
		   bitrate_kbps = excluded.bitrate_kbps,
		   cached_at = excluded.cached_at`,
		path, size, modified.Unix(), entry.DurationSeconds, entry.BitrateKbps,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("probe cache save: %w", err)
	}
	return nil
}

// Clear removes every cached probe result.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM probe_results"); err != nil {
		return fmt.Errorf("probe cache clear: %w", err)
	}
	return nil
}

// Count reports how many probe results are cached.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM probe_results").Scan(&count); err != nil {
		return 0, fmt.Errorf("probe cache count: %w", err)
	}
	return count, nil
}

var _ probe.Cache = (*Store)(nil)
