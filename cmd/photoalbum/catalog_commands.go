package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newAlbumsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "albums",
		Short: "List albums and their photo counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			views := albumViews(lib.Catalog().Albums.Albums())
			return writeOutput(cmd, ctx.outputFormat(), views, func() string {
				if len(views) == 0 {
					return "No albums found"
				}
				return renderAlbums(views)
			})
		},
	}
}

func newPhotosCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "photos [album]",
		Short: "List photos in one album, or in every album",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			photos := lib.Catalog().Photos()
			if len(args) == 1 {
				album, ok := lib.Catalog().Albums.Find(args[0])
				if !ok {
					return fmt.Errorf("album %q not found", args[0])
				}
				photos = album.Photos()
			}
			views := photoViews(photos)
			return writeOutput(cmd, ctx.outputFormat(), views, func() string {
				if len(views) == 0 {
					return "No photos found"
				}
				return renderPhotos(views)
			})
		},
	}
}

func newTagsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags and how many photos carry each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			views := tagViews(lib.Catalog().Tags.Tags())
			return writeOutput(cmd, ctx.outputFormat(), views, func() string {
				if len(views) == 0 {
					return "No tags found"
				}
				return renderTags(views)
			})
		},
	}
}

func newRangeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "range <start> <end>",
		Short: "List photos dated between two days (YYYY-MM-DD), inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDay(args[0])
			if err != nil {
				return err
			}
			end, err := parseDay(args[1])
			if err != nil {
				return err
			}
			if end.Before(start) {
				return fmt.Errorf("end date %s is before start date %s", args[1], args[0])
			}
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			// The end day is included up to its last instant.
			photos := lib.Catalog().FindPhotosInDateRange(start, end.AddDate(0, 0, 1).Add(-time.Nanosecond))
			views := photoViews(photos)
			return writeOutput(cmd, ctx.outputFormat(), views, func() string {
				if len(views) == 0 {
					return "No photos in range"
				}
				return renderPhotos(views)
			})
		},
	}
}

func parseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return day, nil
}
