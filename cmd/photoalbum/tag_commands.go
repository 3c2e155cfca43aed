package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	tagCmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag photos and manage tags",
	}
	tagCmd.AddCommand(newTagAddCommand(ctx))
	tagCmd.AddCommand(newTagRemoveCommand(ctx))
	tagCmd.AddCommand(newTagRenameCommand(ctx))
	tagCmd.AddCommand(newTagDeleteCommand(ctx))
	return tagCmd
}

func newTagAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <album> <photo> <tag>...",
		Short: "Tag a photo",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			photo, err := findPhoto(lib, args[0], args[1])
			if err != nil {
				return err
			}
			for _, name := range args[2:] {
				name = strings.TrimSpace(name)
				if name == "" {
					return fmt.Errorf("tag name must not be empty")
				}
				lib.Catalog().TagPhoto(photo, name)
			}
			if err := ctx.persist(cmd.Context(), lib, photo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s tags: %s\n", args[0], args[1], strings.Join(photo.TagNames(), ", "))
			return nil
		},
	}
}

func newTagRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <album> <photo> <tag>...",
		Short: "Remove tags from a photo",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			photo, err := findPhoto(lib, args[0], args[1])
			if err != nil {
				return err
			}
			for _, name := range args[2:] {
				tag, ok := lib.Catalog().Tags.Find(name)
				if !ok || !photo.HasTag(tag) {
					return fmt.Errorf("photo %s/%s is not tagged %q", args[0], args[1], name)
				}
				photo.RemoveTag(tag)
			}
			if err := ctx.persist(cmd.Context(), lib, photo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s tags: %s\n", args[0], args[1], strings.Join(photo.TagNames(), ", "))
			return nil
		},
	}
}

func newTagRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a tag on every photo that carries it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newName := strings.TrimSpace(args[1])
			if newName == "" {
				return fmt.Errorf("tag name must not be empty")
			}
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			tags := lib.Catalog().Tags
			tag, ok := tags.Find(args[0])
			if !ok {
				return fmt.Errorf("tag %q not found", args[0])
			}
			if !tags.Rename(args[0], newName) {
				return fmt.Errorf("cannot rename %q to %q: name already in use", args[0], newName)
			}
			if err := ctx.persist(cmd.Context(), lib, tag.Photos()...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed tag %q to %q\n", args[0], newName)
			return nil
		},
	}
}

func newTagDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tag>",
		Short: "Remove a tag from every photo and delete it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			tag, ok := lib.Catalog().Tags.Find(args[0])
			if !ok {
				return fmt.Errorf("tag %q not found", args[0])
			}
			tagged := tag.Photos()
			lib.Catalog().Tags.Remove(args[0])
			if err := ctx.persist(cmd.Context(), lib, tagged...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %q from %d photos\n", args[0], len(tagged))
			return nil
		},
	}
}
