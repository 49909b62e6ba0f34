package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"judder/internal/config"
	"judder/internal/framerate"
	"judder/internal/logging"
	"judder/internal/rateset"
	"judder/internal/report"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	noColorFlag  *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce    sync.Once
	logger        *slog.Logger
	correlationID string
}

func newCommandContext(configFlag, logLevelFlag *string, noColorFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		noColorFlag:  noColorFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = fmt.Errorf("--log-level: %w", err)
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// loggerFor returns the invocation logger tagged with the command name and a
// per-invocation correlation ID, plus a context carrying that ID.
func (c *commandContext) loggerFor(cmd *cobra.Command) (context.Context, *slog.Logger) {
	c.loggerOnce.Do(func() {
		c.correlationID = uuid.NewString()
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "logging disabled: %v\n", err)
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	ctx := logging.WithCorrelationID(cmd.Context(), c.correlationID)
	logger := logging.NewComponentLogger(logging.WithContext(ctx, c.logger), "cli").
		With(logging.String("command", cmd.CommandPath()))
	return ctx, logger
}

func (c *commandContext) withStore(ctx context.Context, fn func(*rateset.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := rateset.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open rate store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// resolveReference parses flagValue when set, otherwise asks the rate store
// for the selected reference, falling back to the configured default.
func (c *commandContext) resolveReference(ctx context.Context, flagValue string) (float64, error) {
	if strings.TrimSpace(flagValue) != "" {
		ref, err := framerate.Parse(flagValue)
		if err != nil {
			return 0, fmt.Errorf("--ref: %w", err)
		}
		return ref, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return 0, err
	}
	var ref float64
	err = c.withStore(ctx, func(store *rateset.Store) error {
		var resolveErr error
		ref, resolveErr = store.ResolveReference(ctx, cfg.Analysis.ReferenceFPS)
		return resolveErr
	})
	return ref, err
}

func (c *commandContext) colorize(w io.Writer) bool {
	if c.noColorFlag != nil && *c.noColorFlag {
		return false
	}
	return report.ShouldColorize(w)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
