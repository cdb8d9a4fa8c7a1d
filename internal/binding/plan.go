package binding

import (
	"context"
	"fmt"
	"path/filepath"

	"bookbind/internal/book"
	"bookbind/internal/chapters"
	"bookbind/internal/logging"
	"bookbind/internal/probe"
	"bookbind/internal/scan"
)

// Plan derives the complete bind plan for a request without touching
// anything on disk beyond reads and probing. The timeline is threaded
// directly from builder to renderer; nothing is re-parsed from written
// artifacts.
func (b *Binder) Plan(ctx context.Context, req Request) (*Plan, error) {
	dir, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("resolve directory: %w", err)
	}

	names, err := scan.ListAudioFiles(dir, b.cfg.Binding.Extensions)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", chapters.ErrEmptyInput, dir)
	}

	files, err := b.prober.ProbeAll(ctx, dir, names)
	if err != nil {
		return nil, err
	}

	identity := b.resolveIdentity(ctx, dir, req, files)

	separator := req.TitleSeparator
	if separator == "" && !req.TitleSeparatorSet {
		separator = b.cfg.Binding.TitleSeparator
	}

	encoder := req.Encoder
	if encoder == "" {
		encoder = b.cfg.Binding.Encoder
	}

	bitrate := req.BitrateKbps
	if bitrate == 0 {
		bitrate = b.cfg.Binding.BitrateKbps
	}
	if bitrate == 0 {
		rates := make([]int, 0, len(files))
		for _, file := range files {
			rates = append(rates, file.BitrateKbps)
		}
		bitrate, err = probe.SelectBitrate(rates)
		if err != nil {
			return nil, err
		}
		b.logger.Info("selected common bitrate", logging.Int("bitrate_kbps", bitrate))
	}

	cover := req.CoverPath
	if cover == "" {
		cover = scan.FindCoverImage(dir, b.cfg.Binding.CoverCandidates)
	}

	sources := make([]chapters.SourceFile, 0, len(files))
	for _, file := range files {
		sources = append(sources, chapters.SourceFile{Name: file.Name, DurationSeconds: file.DurationSeconds})
	}
	timeline, err := chapters.Build(sources, separator)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Directory:    dir,
		Identity:     identity,
		Files:        files,
		Chapters:     timeline,
		CoverPath:    cover,
		Encoder:      encoder,
		BitrateKbps:  bitrate,
		Playlist:     chapters.RenderPlaylist(sources),
		Metadata:     chapters.RenderMetadata(timeline, identity),
		PlaylistPath: filepath.Join(dir, PlaylistFileName),
		MetadataPath: filepath.Join(dir, MetadataFileName),
		OutputPath:   filepath.Join(dir, sanitizeFileName(identity.OutputBaseName())+".m4b"),
	}, nil
}

// resolveIdentity applies the precedence: explicit overrides, then the
// directory naming convention, then embedded tags of the first source file.
func (b *Binder) resolveIdentity(ctx context.Context, dir string, req Request, files []probe.Result) book.Identity {
	identity := book.Parse(dir)
	if req.Title != "" {
		identity.Title = req.Title
	}
	if req.Author != "" {
		identity.Author = req.Author
	}

	incomplete := identity.Title == "" || identity.Title == book.UnknownTitle || identity.Author == ""
	if incomplete && len(files) > 0 {
		fallback, err := book.FromTags(ctx, files[0].Path)
		if err != nil {
			b.logger.Debug("tag fallback unavailable", logging.Error(err))
		} else {
			identity = book.Merge(identity, fallback)
		}
	}

	if identity.Title == "" {
		identity.Title = book.UnknownTitle
	}
	return identity
}
