package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"judder/internal/preflight"
	"judder/internal/report"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, the rate store, and ffprobe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, _ := ctx.loggerFor(cmd)
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(runCtx, cfg)
			healthy := preflight.Healthy(results)

			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{r.Name, checkStatus(r), r.Detail})
				}
				columns := []report.Column{{Header: "Check"}, {Header: "Status"}, {Header: "Detail"}}
				fmt.Fprintln(cmd.OutOrStdout(), report.Table(columns, rows))
			}
			if !healthy {
				return errors.New("one or more required checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func checkStatus(r preflight.Result) string {
	switch {
	case r.Passed:
		return "ok"
	case r.Optional:
		return "missing (optional)"
	default:
		return "failed"
	}
}
