package probe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"bookbind/internal/logging"
	"bookbind/internal/media/ffprobe"
)

const defaultWorkers = 4

var inspectFile = ffprobe.Inspect

// Result carries the externally probed properties of one source file.
type Result struct {
	Name            string
	Path            string
	DurationSeconds float64
	BitrateKbps     int
}

// Entry is the cacheable subset of a probe result.
type Entry struct {
	DurationSeconds float64
	BitrateKbps     int
}

// Cache persists probe results across runs, keyed by path plus file identity
// (size and mtime). A nil Cache disables caching.
type Cache interface {
	Lookup(ctx context.Context, path string, size int64, modified time.Time) (Entry, bool, error)
	Save(ctx context.Context, path string, size int64, modified time.Time, entry Entry) error
}

// Option configures a Prober.
type Option func(*Prober)

// WithBinary overrides the ffprobe binary name.
func WithBinary(binary string) Option {
	return func(p *Prober) {
		if binary != "" {
			p.binary = binary
		}
	}
}

// WithCache attaches a probe result cache.
func WithCache(cache Cache) Option {
	return func(p *Prober) { p.cache = cache }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		if logger != nil {
			p.logger = logging.NewComponentLogger(logger, "probe")
		}
	}
}

// WithWorkers bounds the probe fan-out.
func WithWorkers(n int) Option {
	return func(p *Prober) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithProgress registers a callback invoked once per completed file.
func WithProgress(fn func()) Option {
	return func(p *Prober) { p.onProgress = fn }
}

// Prober resolves durations and bitrates for source files through ffprobe,
// consulting the cache first.
type Prober struct {
	binary     string
	cache      Cache
	logger     *slog.Logger
	workers    int
	onProgress func()
}

// New constructs a Prober.
func New(opts ...Option) *Prober {
	p := &Prober{binary: "ffprobe", logger: logging.NewNop(), workers: defaultWorkers}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProbeAll resolves every named file under dir. Probing runs in a bounded
// fan-out; results are re-associated with their file by position so the
// returned slice preserves the caller's (sorted) order regardless of
// completion order. Any single failure aborts the whole probe: a timeline
// built from partial durations would be wrong.
func (p *Prober) ProbeAll(ctx context.Context, dir string, names []string) ([]Result, error) {
	results := make([]Result, len(names))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.workers)
	for i, name := range names {
		group.Go(func() error {
			result, err := p.probeOne(groupCtx, filepath.Join(dir, name), name)
			if err != nil {
				return err
			}
			results[i] = result
			if p.onProgress != nil {
				p.onProgress()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Prober) probeOne(ctx context.Context, path, name string) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("stat %s: %w", path, err)
	}

	if p.cache != nil {
		entry, ok, err := p.cache.Lookup(ctx, path, info.Size(), info.ModTime())
		if err != nil {
			p.logger.Warn("probe cache lookup failed", logging.String("file", name), logging.Error(err))
		} else if ok {
			p.logger.Debug("probe cache hit", logging.String("file", name))
			return Result{Name: name, Path: path, DurationSeconds: entry.DurationSeconds, BitrateKbps: entry.BitrateKbps}, nil
		}
	}

	probed, err := inspectFile(ctx, p.binary, path)
	if err != nil {
		return Result{}, err
	}
	duration, err := probed.DurationSeconds()
	if err != nil {
		return Result{}, err
	}
	result := Result{
		Name:            name,
		Path:            path,
		DurationSeconds: duration,
		BitrateKbps:     probed.BitRateKbps(),
	}
	p.logger.Debug("probed file",
		logging.String("file", name),
		logging.Float64("duration_seconds", duration),
		logging.Int("bitrate_kbps", result.BitrateKbps))

	if p.cache != nil {
		entry := Entry{DurationSeconds: duration, BitrateKbps: result.BitrateKbps}
		if err := p.cache.Save(ctx, path, info.Size(), info.ModTime(), entry); err != nil {
			p.logger.Warn("probe cache save failed", logging.String("file", name), logging.Error(err))
		}
	}
	return result, nil
}
