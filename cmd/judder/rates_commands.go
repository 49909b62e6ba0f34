package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"judder/internal/framerate"
	"judder/internal/logging"
	"judder/internal/rateset"
	"judder/internal/report"
)

func newRatesCommand(ctx *commandContext) *cobra.Command {
	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage the set of display rates used by matrix",
	}

	ratesCmd.AddCommand(newRatesListCommand(ctx))
	ratesCmd.AddCommand(newRatesAddCommand(ctx))
	ratesCmd.AddCommand(newRatesRemoveCommand(ctx))
	ratesCmd.AddCommand(newRatesResetCommand(ctx))

	return ratesCmd
}

type rateEntry struct {
	FPS       float64 `json:"fps"`
	Label     string  `json:"label"`
	Reference bool    `json:"reference"`
}

func newRatesListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the rate set",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, _ := ctx.loggerFor(cmd)

			var entries []rateEntry
			err := ctx.withStore(runCtx, func(store *rateset.Store) error {
				rates, err := store.List(runCtx)
				if err != nil {
					return err
				}
				ref, hasRef, err := store.Reference(runCtx)
				if err != nil {
					return err
				}
				entries = make([]rateEntry, 0, len(rates))
				for _, fps := range rates {
					entries = append(entries, rateEntry{
						FPS:       fps,
						Label:     framerate.Label(fps),
						Reference: hasRef && framerate.Round(fps) == framerate.Round(ref),
					})
				}
				return nil
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				marker := ""
				if e.Reference {
					marker = "*"
				}
				rows = append(rows, []string{framerate.Format(e.FPS), e.Label, marker})
			}
			columns := []report.Column{{Header: "Rate", Right: true}, {Header: "Label"}, {Header: "Reference"}}
			fmt.Fprintln(cmd.OutOrStdout(), report.Table(columns, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newRatesAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add RATE...",
		Short: "Add display rates to the set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger := ctx.loggerFor(cmd)
			rates, err := parseRates(args)
			if err != nil {
				return err
			}
			return ctx.withStore(runCtx, func(store *rateset.Store) error {
				out := cmd.OutOrStdout()
				for _, fps := range rates {
					if err := store.Add(runCtx, fps); err != nil {
						return err
					}
					logger.Info("rate added", logging.Args(logging.Float64(logging.FieldDisplayFPS, fps))...)
					fmt.Fprintf(out, "Added %s\n", framerate.Label(fps))
				}
				return nil
			})
		},
	}
}

func newRatesRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove RATE...",
		Aliases: []string{"rm"},
		Short:   "Remove display rates from the set",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger := ctx.loggerFor(cmd)
			rates, err := parseRates(args)
			if err != nil {
				return err
			}
			return ctx.withStore(runCtx, func(store *rateset.Store) error {
				out := cmd.OutOrStdout()
				for _, fps := range rates {
					if err := store.Remove(runCtx, fps); err != nil {
						if errors.Is(err, rateset.ErrNotFound) {
							return fmt.Errorf("%s is not in the rate set", framerate.Label(fps))
						}
						return err
					}
					logger.Info("rate removed", logging.Args(logging.Float64(logging.FieldDisplayFPS, fps))...)
					fmt.Fprintf(out, "Removed %s\n", framerate.Label(fps))
				}
				return nil
			})
		},
	}
}

func newRatesResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the configured default rate set and clear the reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger := ctx.loggerFor(cmd)
			return ctx.withStore(runCtx, func(store *rateset.Store) error {
				if err := store.Reset(runCtx); err != nil {
					return err
				}
				rates, err := store.List(runCtx)
				if err != nil {
					return err
				}
				logger.Info("rate set reset", logging.Args(logging.Int("rates", len(rates)))...)
				fmt.Fprintf(cmd.OutOrStdout(), "Rate set reset to %d rates\n", len(rates))
				return nil
			})
		},
	}
}

func parseRates(args []string) ([]float64, error) {
	rates := make([]float64, 0, len(args))
	for _, arg := range args {
		fps, err := framerate.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("rate %q: %w", arg, err)
		}
		rates = append(rates, fps)
	}
	return rates, nil
}
