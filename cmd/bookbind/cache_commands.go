package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookbind/internal/probecache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Probe cache utilities",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show probe cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := probecache.Open(cmd.Context(), cfg.ProbeCache.Path)
			if err != nil {
				return fmt.Errorf("open probe cache: %w", err)
			}
			defer store.Close()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("count cache entries: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache path: %s\n", cfg.ProbeCache.Path)
			fmt.Fprintf(out, "Enabled:    %s\n", enabledDisabled(cfg.ProbeCache.Enabled))
			fmt.Fprintf(out, "Entries:    %d\n", count)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached probe results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := probecache.Open(cmd.Context(), cfg.ProbeCache.Path)
			if err != nil {
				return fmt.Errorf("open probe cache: %w", err)
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear probe cache: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Probe cache cleared")
			return nil
		},
	}
}
