package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"judder/internal/framerate"
	"judder/internal/logging"
	"judder/internal/rateset"
	"judder/internal/report"
)

func newMatrixCommand(ctx *commandContext) *cobra.Command {
	var refFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Classify every rate in the rate set against the reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger := ctx.loggerFor(cmd)
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			ref, err := ctx.resolveReference(runCtx, refFlag)
			if err != nil {
				return err
			}
			var rates []float64
			if err := ctx.withStore(runCtx, func(store *rateset.Store) error {
				var listErr error
				rates, listErr = store.List(runCtx)
				return listErr
			}); err != nil {
				return err
			}

			lines, err := report.BuildMatrix(runCtx, rates, ref, cfg.Analysis.Workers)
			if err != nil {
				return err
			}
			logger.Debug("matrix built",
				logging.Args(
					logging.Float64(logging.FieldReferenceFPS, ref),
					logging.Int("rates", len(rates)),
					logging.Int("workers", cfg.Analysis.Workers),
				)...)

			if jsonOutput {
				return writeJSON(cmd, lines)
			}
			out := cmd.OutOrStdout()
			colorize := ctx.colorize(out)
			fmt.Fprintf(out, "Reference: %s\n\n", framerate.Label(ref))
			fmt.Fprint(out, report.MatrixStrips(lines, colorize))
			if !colorize {
				fmt.Fprintln(out, report.Legend())
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, report.SummaryTable(lines))
			return nil
		},
	}

	cmd.Flags().StringVar(&refFlag, "ref", "", "Reference frame rate (defaults to the selected reference)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
