package config

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"judder/internal/framerate"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeAnalysis(); err != nil {
		return err
	}
	c.normalizeFFprobe()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAnalysis() error {
	if value, ok := os.LookupEnv("JUDDER_REFERENCE_FPS"); ok && strings.TrimSpace(value) != "" {
		fps, err := framerate.Parse(value)
		if err != nil {
			return fmt.Errorf("JUDDER_REFERENCE_FPS: %w", err)
		}
		c.Analysis.ReferenceFPS = fps
	}
	if c.Analysis.ReferenceFPS == 0 {
		c.Analysis.ReferenceFPS = defaultReferenceFPS
	}

	if len(c.Analysis.Rates) == 0 {
		c.Analysis.Rates = framerate.Defaults()
	}
	rates := make([]float64, 0, len(c.Analysis.Rates))
	seen := make(map[float64]struct{}, len(c.Analysis.Rates))
	for _, fps := range c.Analysis.Rates {
		key := framerate.Round(fps)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		rates = append(rates, fps)
	}
	slices.Sort(rates)
	c.Analysis.Rates = rates

	if c.Analysis.Workers <= 0 {
		c.Analysis.Workers = runtime.NumCPU()
	}
	return nil
}

func (c *Config) normalizeFFprobe() {
	if value, ok := os.LookupEnv("JUDDER_FFPROBE"); ok && strings.TrimSpace(value) != "" {
		c.FFprobe.Binary = value
	}
	c.FFprobe.Binary = strings.TrimSpace(c.FFprobe.Binary)
	if c.FFprobe.Binary == "" {
		c.FFprobe.Binary = defaultFFprobeBinary
	}
	if c.FFprobe.TimeoutSeconds <= 0 {
		c.FFprobe.TimeoutSeconds = defaultFFprobeTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
