package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bookbind/internal/chapters"
	"bookbind/internal/probe"
	"bookbind/internal/scan"
)

func newChaptersCommand(ctx *commandContext) *cobra.Command {
	var separator string

	cmd := &cobra.Command{
		Use:   "chapters [directory]",
		Short: "Show the chapter timeline a bind would produce",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dir := "."
			if len(args) > 0 {
				dir = strings.TrimSpace(args[0])
			}

			logger, err := ctx.buildLogger(cfg)
			if err != nil {
				return err
			}

			names, err := scan.ListAudioFiles(dir, cfg.Binding.Extensions)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return fmt.Errorf("%w in %s", chapters.ErrEmptyInput, dir)
			}

			prober, closeCache := ctx.buildProber(cmd.Context(), cfg, logger, nil)
			defer closeCache()

			files, err := prober.ProbeAll(cmd.Context(), dir, names)
			if err != nil {
				return err
			}

			sep := separator
			if sep == "" && !cmd.Flags().Changed("separator") {
				sep = cfg.Binding.TitleSeparator
			}

			sources := make([]chapters.SourceFile, 0, len(files))
			for _, file := range files {
				sources = append(sources, chapters.SourceFile{Name: file.Name, DurationSeconds: file.DurationSeconds})
			}
			timeline, err := chapters.Build(sources, sep)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderChapterTable(timeline, files))
			return nil
		},
	}

	cmd.Flags().StringVarP(&separator, "separator", "n", "", "Chapter title separator in file names (default: keep the full file name)")
	return cmd
}

func renderChapterTable(timeline []chapters.Chapter, files []probe.Result) string {
	headers := []string{"#", "Chapter", "Start", "End", "Length"}
	rows := make([][]string, 0, len(timeline))
	for i, chapter := range timeline {
		end := "-"
		if !chapter.OpenEnded() {
			end = formatMillis(chapter.EndMillis)
		}
		length := ""
		if i < len(files) {
			length = formatSeconds(int64(files[i].DurationSeconds))
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			chapter.Title,
			formatMillis(chapter.StartMillis),
			end,
			length,
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight})
}
