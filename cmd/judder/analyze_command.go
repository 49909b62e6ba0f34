package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"judder/internal/cadence"
	"judder/internal/framerate"
	"judder/internal/logging"
	"judder/internal/report"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var fpsFlag string
	var refFlag string
	var jsonOutput bool
	var showFrames bool
	var onlyNames []string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify one second of frames at a display rate against the reference",
		Example: `  judder analyze --fps 24 --ref 60
  judder analyze --fps ntsc-film --frames
  judder analyze --fps 30 --ref 24 --only skipped,partial`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger := ctx.loggerFor(cmd)
			only, err := parseKinds(onlyNames)
			if err != nil {
				return err
			}

			display, err := framerate.Parse(fpsFlag)
			if err != nil {
				return fmt.Errorf("--fps: %w", err)
			}
			ref, err := ctx.resolveReference(runCtx, refFlag)
			if err != nil {
				return err
			}

			line := report.BuildLine(display, ref)
			logger.Debug("cadence analyzed",
				logging.Args(
					logging.Float64(logging.FieldDisplayFPS, display),
					logging.Float64(logging.FieldReferenceFPS, ref),
					logging.Int("frames", len(line.Frames)),
				)...)

			if jsonOutput {
				return writeJSON(cmd, line)
			}
			out := cmd.OutOrStdout()
			renderLine(out, line, ctx.colorize(out))
			renderFrames(out, line, showFrames, only)
			return nil
		},
	}

	cmd.Flags().StringVar(&fpsFlag, "fps", "", "Display frame rate (e.g. 24, 23.976, 24000/1001, ntsc)")
	cmd.Flags().StringVar(&refFlag, "ref", "", "Reference frame rate (defaults to the selected reference)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&showFrames, "frames", false, "Include the per-frame table")
	cmd.Flags().StringSliceVar(&onlyNames, "only", nil, "Limit the per-frame table to these kinds (implies --frames)")
	_ = cmd.MarkFlagRequired("fps")
	return cmd
}

// renderLine prints the heading, strip, and per-kind summary for one line.
func renderLine(out io.Writer, line report.Line, colorize bool) {
	fmt.Fprintf(out, "%s on %s\n", line.Label(), framerate.Label(line.ReferenceFPS))
	fmt.Fprintln(out, report.Strip(line, colorize))
	if !colorize {
		fmt.Fprintln(out, report.Legend())
	}
	fmt.Fprintln(out, report.SummaryTable([]report.Line{line}))
}

// renderFrames prints the per-frame table when asked for, limited to kinds
// when any are given.
func renderFrames(out io.Writer, line report.Line, show bool, kinds []cadence.Kind) {
	if !show && len(kinds) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, report.FrameTable(line.Only(kinds...)))
}
