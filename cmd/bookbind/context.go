package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"bookbind/internal/config"
	"bookbind/internal/logging"
	"bookbind/internal/probe"
	"bookbind/internal/probecache"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// buildLogger constructs the CLI logger on stderr so command output on stdout
// stays machine-readable.
func (c *commandContext) buildLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: os.Stderr,
	})
}

// buildProber assembles a prober with the configured cache attached. The
// returned closer releases the cache store; it is a no-op when caching is
// disabled or the cache failed to open. A broken cache degrades to direct
// probing rather than failing the command.
func (c *commandContext) buildProber(ctx context.Context, cfg *config.Config, logger *slog.Logger, progress func()) (*probe.Prober, func()) {
	opts := []probe.Option{
		probe.WithBinary(cfg.FFprobeBinary()),
		probe.WithLogger(logger),
	}
	if progress != nil {
		opts = append(opts, probe.WithProgress(progress))
	}

	closer := func() {}
	if cfg.ProbeCache.Enabled {
		store, err := probecache.Open(ctx, cfg.ProbeCache.Path)
		if err != nil {
			logger.Warn("probe cache unavailable",
				logging.String("path", cfg.ProbeCache.Path),
				logging.Error(err))
		} else {
			opts = append(opts, probe.WithCache(store))
			closer = func() { _ = store.Close() }
		}
	}

	return probe.New(opts...), closer
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
