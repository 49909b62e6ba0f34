package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"judder/internal/config"
	"judder/internal/framerate"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "judder")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.RateStorePath() != filepath.Join(wantState, "rates.db") {
		t.Fatalf("unexpected rate store path: %q", cfg.RateStorePath())
	}
	if cfg.Analysis.ReferenceFPS != 30 {
		t.Fatalf("unexpected reference fps: %v", cfg.Analysis.ReferenceFPS)
	}
	if len(cfg.Analysis.Rates) != len(framerate.Defaults()) {
		t.Fatalf("unexpected default rates: %v", cfg.Analysis.Rates)
	}
	if cfg.Analysis.Workers <= 0 {
		t.Fatalf("expected workers to default to CPU count, got %d", cfg.Analysis.Workers)
	}
	if cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected ffprobe binary: %q", cfg.FFprobeBinary())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "judder.toml")

	type payload struct {
		Paths struct {
			StateDir string `toml:"state_dir"`
		} `toml:"paths"`
		Analysis struct {
			ReferenceFPS float64   `toml:"reference_fps"`
			Rates        []float64 `toml:"rates"`
		} `toml:"analysis"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Analysis.ReferenceFPS = 60
	custom.Analysis.Rates = []float64{60, 24, 24.0001, 30}
	custom.Logging.Format = " JSON "
	custom.Logging.Level = "DEBUG"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Analysis.ReferenceFPS != 60 {
		t.Fatalf("expected reference 60, got %v", cfg.Analysis.ReferenceFPS)
	}
	want := []float64{24, 30, 60}
	if len(cfg.Analysis.Rates) != len(want) {
		t.Fatalf("expected deduplicated sorted rates %v, got %v", want, cfg.Analysis.Rates)
	}
	for i := range want {
		if cfg.Analysis.Rates[i] != want[i] {
			t.Fatalf("rate %d: got %v want %v", i, cfg.Analysis.Rates[i], want[i])
		}
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestEnvOverridesReferenceAndFFprobe(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JUDDER_REFERENCE_FPS", "ntsc-film")
	t.Setenv("JUDDER_FFPROBE", "/opt/ffmpeg/bin/ffprobe")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Analysis.ReferenceFPS != 23.976 {
		t.Fatalf("expected reference from env, got %v", cfg.Analysis.ReferenceFPS)
	}
	if cfg.FFprobeBinary() != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("expected ffprobe from env, got %q", cfg.FFprobeBinary())
	}
}

func TestEnvRejectsInvalidReference(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JUDDER_REFERENCE_FPS", "-5")

	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, framerate.ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "reference_fps") {
		t.Fatalf("sample config missing reference_fps: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if len(cfg.Analysis.Rates) != len(framerate.Defaults()) {
		t.Fatalf("sample rates should match defaults, got %v", cfg.Analysis.Rates)
	}
	if !strings.Contains(cfg.Paths.StateDir, "judder") {
		t.Fatalf("expected state dir to contain judder, got %q", cfg.Paths.StateDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.ReferenceFPS = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero reference")
	}

	cfg = config.Default()
	cfg.Analysis.Rates = []float64{24, -1}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "analysis.rates[1]") {
		t.Fatalf("expected indexed rate error, got %v", err)
	}

	cfg = config.Default()
	cfg.Analysis.Rates = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty rates")
	}

	cfg = config.Default()
	cfg.FFprobe.TimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive ffprobe timeout")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}
