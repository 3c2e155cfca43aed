package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"photoalbum/internal/preflight"
)

type checkView struct {
	Name   string `json:"name" yaml:"name"`
	Passed bool   `json:"passed" yaml:"passed"`
	Detail string `json:"detail" yaml:"detail"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the library and log directories are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			views := make([]checkView, 0, len(results))
			for _, r := range results {
				views = append(views, checkView{Name: r.Name, Passed: r.Passed, Detail: r.Detail})
			}
			colorize := shouldColorize(cmd.OutOrStdout())
			if err := writeOutput(cmd, ctx.outputFormat(), views, func() string {
				lines := make([]string, 0, len(views))
				for _, v := range views {
					lines = append(lines, fmt.Sprintf("%-4s %s: %s", statusLabel(v.Passed, colorize), v.Name, v.Detail))
				}
				return strings.Join(lines, "\n")
			}); err != nil {
				return err
			}
			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d checks failed", len(failed))
			}
			return nil
		},
	}
}
