package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"judder/internal/cadence"
	"judder/internal/framerate"
	"judder/internal/report"
)

func newFrameCommand(ctx *commandContext) *cobra.Command {
	var fpsFlag string
	var refFlag string

	cmd := &cobra.Command{
		Use:   "frame INDEX",
		Short: "Show alignment details for one display frame as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, _ := ctx.loggerFor(cmd)

			display, err := framerate.Parse(fpsFlag)
			if err != nil {
				return fmt.Errorf("--fps: %w", err)
			}
			ref, err := ctx.resolveReference(runCtx, refFlag)
			if err != nil {
				return err
			}
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("frame index %q: not an integer", args[0])
			}
			if count := cadence.FrameCount(display); index < 0 || index >= count {
				return fmt.Errorf("frame index %d out of range: %s shows frames 0-%d", index, framerate.Label(display), count-1)
			}
			return writeJSON(cmd, report.NewFrameInfo(display, ref, index))
		},
	}

	cmd.Flags().StringVar(&fpsFlag, "fps", "", "Display frame rate")
	cmd.Flags().StringVar(&refFlag, "ref", "", "Reference frame rate (defaults to the selected reference)")
	_ = cmd.MarkFlagRequired("fps")
	return cmd
}
