package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"photoalbum/internal/config"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <album> <file>...",
		Short: "Copy photo files into an album",
		Long: "Copy each file into the album directory and add it to the album.\n" +
			"The album is created when it does not exist. Files that fail are\n" +
			"reported individually and do not stop the others.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]string, 0, len(args)-1)
			for _, arg := range args[1:] {
				path, err := config.ExpandPath(arg)
				if err != nil {
					return err
				}
				files = append(files, path)
			}
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			report, err := lib.ImportFiles(cmd.Context(), files, args[0])
			if err != nil {
				return err
			}
			views := outcomeViews(report.Outcomes)
			colorize := shouldColorize(cmd.OutOrStdout())
			if err := writeOutput(cmd, ctx.outputFormat(), views, func() string {
				return renderOutcomes(views, colorize)
			}); err != nil {
				return err
			}
			if failed := len(report.Failed()); failed > 0 {
				return fmt.Errorf("%d of %d files were not imported", failed, len(report.Outcomes))
			}
			return nil
		},
	}
}

func newWriteMetadataCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "write-metadata",
		Short: "Write every photo's description, tags, and date into its file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			report, err := lib.WriteLibraryMetadata(cmd.Context())
			if err != nil {
				return err
			}
			failed := report.Failed()
			if ctx.outputFormat() != outputTable {
				if err := writeOutput(cmd, ctx.outputFormat(), outcomeViews(report.Outcomes), nil); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote metadata for %d photos\n", len(report.Outcomes)-len(failed))
				if len(failed) > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), renderOutcomes(outcomeViews(failed), shouldColorize(cmd.OutOrStdout())))
				}
			}
			if len(failed) > 0 {
				return fmt.Errorf("metadata write failed for %d photos", len(failed))
			}
			return nil
		},
	}
}
