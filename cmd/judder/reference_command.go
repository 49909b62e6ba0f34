package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"judder/internal/framerate"
	"judder/internal/logging"
	"judder/internal/rateset"
)

func newReferenceCommand(ctx *commandContext) *cobra.Command {
	show := func(cmd *cobra.Command, args []string) error {
		runCtx, _ := ctx.loggerFor(cmd)
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return err
		}
		return ctx.withStore(runCtx, func(store *rateset.Store) error {
			ref, selected, err := store.Reference(runCtx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !selected {
				fmt.Fprintf(out, "%s (configured default)\n", framerate.Label(cfg.Analysis.ReferenceFPS))
				return nil
			}
			fmt.Fprintln(out, framerate.Label(ref))
			return nil
		})
	}

	refCmd := &cobra.Command{
		Use:   "reference",
		Short: "Show or select the reference frame rate",
		Args:  cobra.NoArgs,
		RunE:  show,
	}

	refCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the reference frame rate",
		Args:  cobra.NoArgs,
		RunE:  show,
	})

	refCmd.AddCommand(&cobra.Command{
		Use:   "set RATE",
		Short: "Select the reference frame rate, adding it to the rate set if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger := ctx.loggerFor(cmd)
			fps, err := framerate.Parse(args[0])
			if err != nil {
				return fmt.Errorf("rate %q: %w", args[0], err)
			}
			return ctx.withStore(runCtx, func(store *rateset.Store) error {
				if err := store.SetReference(runCtx, fps); err != nil {
					return err
				}
				logger.Info("reference selected", logging.Args(logging.Float64(logging.FieldReferenceFPS, fps))...)
				fmt.Fprintf(cmd.OutOrStdout(), "Reference set to %s\n", framerate.Label(fps))
				return nil
			})
		},
	})

	return refCmd
}
