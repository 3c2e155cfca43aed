package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"photoalbum/internal/logging"
	"photoalbum/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var album string
	var component string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the photoalbum log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Paths.LogDir == "" {
				return fmt.Errorf("file logging is disabled (set paths.log_dir)")
			}
			path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)

			var filter logs.Filter
			if album != "" {
				filter = append(filter, "album="+album)
			}
			if component != "" {
				filter = append(filter, component)
			}

			out := cmd.OutOrStdout()
			tail, offset, err := logs.Last(path, lines, filter)
			if err != nil {
				return err
			}
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, offset, logs.DefaultPoll, filter, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines")
	cmd.Flags().StringVar(&album, "album", "", "Only show lines mentioning this album")
	cmd.Flags().StringVar(&component, "component", "", "Only show lines from this component")
	return cmd
}
