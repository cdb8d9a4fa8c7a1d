package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookbind/internal/book"
)

func newIdentityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "identity <directory>",
		Short: "Show the title and author derived from a directory name",
		Long: `Identity parses the Title_Author directory naming convention and prints
the derived book identity along with the output file name a bind would use.
No files are read; only the name matters.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := book.Parse(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:  %s\n", identity.Title)
			fmt.Fprintf(out, "Author: %s\n", identity.Author)
			fmt.Fprintf(out, "Output: %s.m4b\n", identity.OutputBaseName())
			return nil
		},
	}
}
