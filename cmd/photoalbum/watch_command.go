package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"photoalbum/internal/logging"
	"photoalbum/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the catalog loaded and pick up new photos as they appear",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if cfg.Paths.LogDir != "" {
				logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
					Dir:     cfg.Paths.LogDir,
					Pattern: "*.log*",
					Exclude: []string{filepath.Join(cfg.Paths.LogDir, logging.LogFileName)},
				})
			}

			lib, err := ctx.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s (%d albums, %d photos)\n",
				lib.Root(), lib.Catalog().Albums.Len(), len(lib.Catalog().Photos()))

			debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
			watcher := watch.New(lib.Root(), debounce, logger)
			return watcher.Run(cmd.Context(), func(runCtx context.Context) error {
				report, err := lib.LoadLibrary(runCtx)
				if err != nil {
					return err
				}
				for _, o := range report.Succeeded() {
					fmt.Fprintf(out, "Added %s/%s\n", o.Album, o.Name)
				}
				return nil
			})
		},
	}
}
