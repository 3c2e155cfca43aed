package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"photoalbum/internal/raster"
)

func newDescribeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <album> <photo> <text>",
		Short: "Set a photo's description (an empty text clears it)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			photo, err := findPhoto(lib, args[0], args[1])
			if err != nil {
				return err
			}
			photo.SetDescription(args[2])
			if err := ctx.persist(cmd.Context(), lib, photo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated description of %s/%s\n", args[0], args[1])
			return nil
		},
	}
}

func newDateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "date <album> <photo> <YYYY-MM-DD>",
		Short: "Set a photo's creation date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[2])
			if err != nil {
				return err
			}
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			photo, err := findPhoto(lib, args[0], args[1])
			if err != nil {
				return err
			}
			photo.SetDateCreated(day)
			if err := ctx.persist(cmd.Context(), lib, photo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dated %s/%s %s\n", args[0], args[1], day.Format(dateLayout))
			return nil
		},
	}
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "edit <album> <photo> <operation>...",
		Short: "Apply pixel edits to a photo and save it",
		Long: "Apply pixel edits in order and write the result back into the photo file.\n" +
			"Operations: " + strings.Join(raster.EditNames(), ", ") + ".\n" +
			"Saving re-encodes the photo at its loaded (scaled) size.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			edits := make([]raster.Edit, 0, len(args)-2)
			for _, name := range args[2:] {
				edit, ok := raster.LookupEdit(name)
				if !ok {
					return fmt.Errorf("unknown edit %q (available: %s)", name, strings.Join(raster.EditNames(), ", "))
				}
				edits = append(edits, edit)
			}
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			photo, err := findPhoto(lib, args[0], args[1])
			if err != nil {
				return err
			}
			for _, edit := range edits {
				if err := photo.Edit(edit); err != nil {
					return err
				}
			}
			if err := photo.RefreshThumbnail(lib.Limits().Thumb); err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d edits to %s/%s (not saved)\n", len(edits), args[0], args[1])
				return nil
			}
			if err := lib.SaveRaster(cmd.Context(), photo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d edits to %s/%s\n", len(edits), args[0], args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Apply edits in memory only")
	return cmd
}

func newSaveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "save <album> <photo>",
		Short: "Re-encode a photo at its loaded size, keeping its metadata",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			photo, err := findPhoto(lib, args[0], args[1])
			if err != nil {
				return err
			}
			if err := lib.SaveRaster(cmd.Context(), photo); err != nil {
				return err
			}
			width, height := photo.Raster().Size()
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s/%s (%dx%d)\n", args[0], args[1], width, height)
			return nil
		},
	}
}
