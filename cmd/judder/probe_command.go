package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"judder/internal/config"
	"judder/internal/framerate"
	"judder/internal/logging"
	"judder/internal/media/ffprobe"
	"judder/internal/report"
)

type probeOutput struct {
	File         string `json:"file"`
	Codec        string `json:"codec"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	FieldOrder   string `json:"field_order,omitempty"`

	// DurationSeconds is 0 when ffprobe reports no usable duration.
	DurationSeconds float64     `json:"duration_seconds"`
	VideoStreams    int         `json:"video_streams"`
	Line            report.Line `json:"line"`

	raw []byte
}

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var refFlag string
	var jsonOutput bool
	var showFrames bool
	var rawOutput bool
	var onlyNames []string

	cmd := &cobra.Command{
		Use:   "probe FILE",
		Short: "Read a media file's frame rate with ffprobe and classify it against the reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger := ctx.loggerFor(cmd)
			only, err := parseKinds(onlyNames)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ref, err := ctx.resolveReference(runCtx, refFlag)
			if err != nil {
				return err
			}

			result, err := probeFile(runCtx, cfg, args[0], ref)
			if err != nil {
				return err
			}
			logger.Debug("media probed",
				logging.Args(
					logging.String("file", result.File),
					logging.Float64(logging.FieldDisplayFPS, result.Line.DisplayFPS),
					logging.Float64(logging.FieldReferenceFPS, ref),
				)...)

			out := cmd.OutOrStdout()
			switch {
			case rawOutput:
				_, err := out.Write(append(bytes.TrimRight(result.raw, "\n"), '\n'))
				return err
			case jsonOutput:
				return writeJSON(cmd, result)
			}
			fmt.Fprintf(out, "%s: %s %dx%d, r_frame_rate %s\n", result.File, result.Codec, result.Width, result.Height, result.RFrameRate)
			fmt.Fprintf(out, "Duration: %s, video streams: %d\n", formatDuration(result.DurationSeconds), result.VideoStreams)
			renderLine(out, result.Line, ctx.colorize(out))
			renderFrames(out, result.Line, showFrames, only)
			return nil
		},
	}

	cmd.Flags().StringVar(&refFlag, "ref", "", "Reference frame rate (defaults to the selected reference)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&showFrames, "frames", false, "Include the per-frame table")
	cmd.Flags().StringSliceVar(&onlyNames, "only", nil, "Limit the per-frame table to these kinds (implies --frames)")
	cmd.Flags().BoolVar(&rawOutput, "raw", false, "Print the ffprobe JSON as returned")
	cmd.MarkFlagsMutuallyExclusive("json", "raw")
	return cmd
}

func probeFile(ctx context.Context, cfg *config.Config, path string, ref float64) (probeOutput, error) {
	probeCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.FFprobe.TimeoutSeconds)*time.Second)
	defer cancel()

	result, err := ffprobe.Inspect(probeCtx, cfg.FFprobeBinary(), path)
	if err != nil {
		return probeOutput{}, err
	}
	fps, stream, err := result.FrameRate()
	if err != nil {
		if errors.Is(err, ffprobe.ErrNoVideo) {
			return probeOutput{}, fmt.Errorf("%s: %w", path, err)
		}
		return probeOutput{}, err
	}
	if err := framerate.Validate(fps); err != nil {
		return probeOutput{}, fmt.Errorf("%s: %w", path, err)
	}

	duration := result.DurationSeconds()
	if math.IsNaN(duration) || duration < 0 {
		duration = 0
	}

	return probeOutput{
		File:            path,
		Codec:           stream.CodecName,
		Width:           stream.Width,
		Height:          stream.Height,
		RFrameRate:      stream.RFrameRate,
		AvgFrameRate:    stream.AvgFrameRate,
		FieldOrder:      stream.FieldOrder,
		DurationSeconds: duration,
		VideoStreams:    result.VideoStreamCount(),
		Line:            report.BuildLine(fps, ref),
		raw:             result.RawJSON(),
	}, nil
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "unknown"
	}
	return time.Duration(seconds * float64(time.Second)).Round(time.Millisecond).String()
}
