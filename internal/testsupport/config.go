package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"judder/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Analysis.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithRates overrides the seeded rate set.
func WithRates(rates ...float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Analysis.Rates = append([]float64(nil), rates...)
	}
}

// WithReference overrides the fallback reference rate.
func WithReference(fps float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Analysis.ReferenceFPS = fps
	}
}

// WithStubbedFFprobe installs an ffprobe stub that prints payload and points
// the config at it.
func WithStubbedFFprobe(payload string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.FFprobe.Binary = WriteStubBinary(b.t, filepath.Join(b.baseDir, "bin"), "ffprobe", payload)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

// WriteConfig writes the paths, analysis, and ffprobe settings of cfg as TOML.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()
	rates := make([]string, 0, len(cfg.Analysis.Rates))
	for _, fps := range cfg.Analysis.Rates {
		rates = append(rates, tomlFloat(fps))
	}
	content := "[paths]\n" +
		"state_dir = " + quote(cfg.Paths.StateDir) + "\n" +
		"log_dir = " + quote(cfg.Paths.LogDir) + "\n" +
		"[analysis]\n" +
		"reference_fps = " + tomlFloat(cfg.Analysis.ReferenceFPS) + "\n" +
		"rates = [" + strings.Join(rates, ", ") + "]\n" +
		"workers = " + strconv.Itoa(cfg.Analysis.Workers) + "\n" +
		"[ffprobe]\n" +
		"binary = " + quote(cfg.FFprobe.Binary) + "\n" +
		"[logging]\n" +
		"level = " + quote(cfg.Logging.Level) + "\n"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func tomlFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
