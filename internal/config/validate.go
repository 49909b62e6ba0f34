package config

import (
	"errors"
	"fmt"

	"judder/internal/framerate"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateFFprobe(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if err := framerate.Validate(c.Analysis.ReferenceFPS); err != nil {
		return fmt.Errorf("analysis.reference_fps: %w", err)
	}
	if len(c.Analysis.Rates) == 0 {
		return errors.New("analysis.rates must include at least one rate")
	}
	for i, fps := range c.Analysis.Rates {
		if err := framerate.Validate(fps); err != nil {
			return fmt.Errorf("analysis.rates[%d]: %w", i, err)
		}
	}
	if c.Analysis.Workers < 0 {
		return errors.New("analysis.workers must be >= 0")
	}
	return nil
}

func (c *Config) validateFFprobe() error {
	if c.FFprobe.TimeoutSeconds <= 0 {
		return errors.New("ffprobe.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
