package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"judder/internal/framerate"
	"judder/internal/logging"
	"judder/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var refFlag string
	var extensions []string
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Probe media files as they appear in a directory",
		Args:  cobra.ExactArgs(1),
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

			out := cmd.OutOrStdout()
			var outMu sync.Mutex
			handler := func(hctx context.Context, path string) {
				result, err := probeFile(hctx, cfg, path, ref)
				if err != nil {
					logging.WarnWithContext(logger, "probe failed", "probe_failed",
						logging.String("file", path),
						logging.Error(err),
						logging.String(logging.FieldImpact, "file skipped"),
					)
					return
				}
				outMu.Lock()
				defer outMu.Unlock()
				fmt.Fprintf(out, "%s\n", filepath.Base(path))
				renderLine(out, result.Line, ctx.colorize(out))
			}

			opts := []watch.Option{watch.WithLogger(logger), watch.WithDebounce(debounce)}
			if len(extensions) > 0 {
				opts = append(opts, watch.WithExtensions(extensions...))
			}
			dir := args[0]
			fmt.Fprintf(out, "Watching %s against %s (%s)\n", dir, framerate.Label(ref), strings.Join(extensionsOrDefault(extensions), " "))
			return watch.New(dir, handler, opts...).Run(runCtx)
		},
	}

	cmd.Flags().StringVar(&refFlag, "ref", "", "Reference frame rate (defaults to the selected reference)")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "File extensions to watch (default common video containers)")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before a file is probed")
	return cmd
}

func extensionsOrDefault(exts []string) []string {
	if len(exts) > 0 {
		return exts
	}
	return watch.DefaultExtensions
}
