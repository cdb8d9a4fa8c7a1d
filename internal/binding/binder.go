package binding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"bookbind/internal/config"
	"bookbind/internal/logging"
	"bookbind/internal/media/ffmpeg"
	"bookbind/internal/probe"
)

// ErrAlreadyBinding indicates another bind of the same directory holds the
// lock.
var ErrAlreadyBinding = errors.New("another bind is already running for this directory")

// Prober resolves source file properties; satisfied by *probe.Prober.
type Prober interface {
	ProbeAll(ctx context.Context, dir string, names []string) ([]probe.Result, error)
}

// Binder runs the bind pipeline: scan, probe, derive, render, mux.
type Binder struct {
	cfg    *config.Config
	logger *slog.Logger
	prober Prober
	muxer  ffmpeg.Client
}

// New constructs a Binder. The logger may be nil.
func New(cfg *config.Config, logger *slog.Logger, prober Prober, muxer ffmpeg.Client) (*Binder, error) {
	if cfg == nil || prober == nil || muxer == nil {
		return nil, errors.New("binder requires config, prober, and muxer")
	}
	return &Binder{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "binder"),
		prober: prober,
		muxer:  muxer,
	}, nil
}

// Run executes the full pipeline for a request and returns the realized
// plan. A failed run produces no partial timeline: artifacts are only
// written after the whole plan derivation succeeds.
func (b *Binder) Run(ctx context.Context, req Request) (*Plan, error) {
	logger := b.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	started := time.Now()

	dir, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("resolve directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire bind lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyBinding, dir)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	plan, err := b.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info("bind plan ready",
		logging.String("title", plan.Identity.Title),
		logging.String("author", plan.Identity.Author),
		logging.Int("files", len(plan.Files)),
		logging.Int("bitrate_kbps", plan.BitrateKbps),
		logging.String("encoder", plan.Encoder),
		logging.String("cover", plan.CoverPath))

	if err := b.writeArtifacts(plan); err != nil {
		return nil, err
	}

	spec := ffmpeg.BindSpec{
		PlaylistPath: plan.PlaylistPath,
		MetadataPath: plan.MetadataPath,
		CoverPath:    plan.CoverPath,
		Encoder:      plan.Encoder,
		BitrateKbps:  plan.BitrateKbps,
		OutputPath:   plan.OutputPath,
	}
	if err := b.muxer.Bind(ctx, spec); err != nil {
		return nil, err
	}

	logger.Info("bound audiobook",
		logging.String("output", plan.OutputPath),
		logging.Int("chapters", len(plan.Chapters)),
		logging.Duration("elapsed", time.Since(started)))
	return plan, nil
}

// writeArtifacts materializes the rendered playlist and metadata document in
// the book directory, replacing any stale copies from earlier runs.
func (b *Binder) writeArtifacts(plan *Plan) error {
	if err := os.WriteFile(plan.PlaylistPath, []byte(plan.Playlist), 0o644); err != nil {
		return fmt.Errorf("write playback manifest: %w", err)
	}
	if err := os.WriteFile(plan.MetadataPath, []byte(plan.Metadata), 0o644); err != nil {
		return fmt.Errorf("write metadata document: %w", err)
	}
	return nil
}
