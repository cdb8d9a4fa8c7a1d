package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"bookbind/internal/binding"
	"bookbind/internal/media/ffmpeg"
	"bookbind/internal/scan"
)

func newBindCommand(ctx *commandContext) *cobra.Command {
	var (
		title     string
		author    string
		cover     string
		encoder   string
		bitrate   int
		separator string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "bind [directory]",
		Short: "Bind a book directory into a chaptered M4B",
		Long: `Bind probes every audio file in the directory, derives the book identity
from the directory name (Title_Author convention), builds the chapter
timeline, and drives ffmpeg to produce a single M4B with embedded chapters
and cover art.

Examples:
  bookbind bind                          # bind the current directory
  bookbind bind ~/books/TomSawyer_MarkTwain
  bookbind bind -t "Custom Title" -b 64 ~/books/TomSawyer_MarkTwain
  bookbind bind --dry-run .              # show the plan without binding`,
		Args: cobra.MaximumNArgs(1),
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

			var progress func()
			var bar *progressbar.ProgressBar
			if !dryRun && isatty.IsTerminal(os.Stderr.Fd()) {
				if names, err := scan.ListAudioFiles(dir, cfg.Binding.Extensions); err == nil && len(names) > 0 {
					bar = progressbar.NewOptions(len(names),
						progressbar.OptionSetDescription("probing"),
						progressbar.OptionSetWriter(os.Stderr),
						progressbar.OptionClearOnFinish(),
					)
					progress = func() { _ = bar.Add(1) }
				}
			}

			prober, closeCache := ctx.buildProber(cmd.Context(), cfg, logger, progress)
			defer closeCache()

			muxer := ffmpeg.NewCLI(
				ffmpeg.WithBinary(cfg.FFmpegBinary()),
				ffmpeg.WithLogger(logger),
			)

			binder, err := binding.New(cfg, logger, prober, muxer)
			if err != nil {
				return err
			}

			req := binding.Request{
				Directory:         dir,
				Title:             title,
				Author:            author,
				CoverPath:         cover,
				Encoder:           encoder,
				BitrateKbps:       bitrate,
				TitleSeparator:    separator,
				TitleSeparatorSet: cmd.Flags().Changed("separator"),
			}

			out := cmd.OutOrStdout()
			if dryRun {
				plan, err := binder.Plan(cmd.Context(), req)
				if err != nil {
					return err
				}
				printPlan(out, plan)
				spec := ffmpeg.BindSpec{
					PlaylistPath: plan.PlaylistPath,
					MetadataPath: plan.MetadataPath,
					CoverPath:    plan.CoverPath,
					Encoder:      plan.Encoder,
					BitrateKbps:  plan.BitrateKbps,
					OutputPath:   plan.OutputPath,
				}
				fmt.Fprintf(out, "\nCommand:\n  %s\n", ffmpeg.CommandLine(cfg.FFmpegBinary(), spec))
				return nil
			}

			plan, err := binder.Run(cmd.Context(), req)
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Bound %s (%d chapters, %s)\n",
				plan.OutputPath, len(plan.Chapters), formatSeconds(plan.TotalSeconds()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Book title (default: derived from directory name)")
	cmd.Flags().StringVarP(&author, "author", "a", "", "Book author (default: derived from directory name)")
	cmd.Flags().StringVarP(&cover, "cover", "c", "", "Cover image path (default: cover.jpg/cover.png in the directory)")
	cmd.Flags().StringVarP(&encoder, "encoder", "e", "", "Audio encoder for the output")
	cmd.Flags().IntVarP(&bitrate, "bitrate", "b", 0, "Output bitrate in kbps (default: most common source bitrate)")
	cmd.Flags().StringVarP(&separator, "separator", "n", "", "Chapter title separator in file names (default: keep the full file name)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Derive and print the bind plan without writing anything")

	return cmd
}

func printPlan(out io.Writer, plan *binding.Plan) {
	fmt.Fprintf(out, "Title:    %s\n", plan.Identity.Title)
	fmt.Fprintf(out, "Author:   %s\n", plan.Identity.Author)
	fmt.Fprintf(out, "Encoder:  %s @ %dk\n", plan.Encoder, plan.BitrateKbps)
	if plan.CoverPath != "" {
		fmt.Fprintf(out, "Cover:    %s\n", plan.CoverPath)
	}
	fmt.Fprintf(out, "Output:   %s\n", plan.OutputPath)
	fmt.Fprintf(out, "Duration: %s across %d files\n\n", formatSeconds(plan.TotalSeconds()), len(plan.Files))
	fmt.Fprintln(out, renderChapterTable(plan.Chapters, plan.Files))
}
