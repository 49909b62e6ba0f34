package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"judder/internal/cadence"
	"judder/internal/config"
	"judder/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("JUDDER_REFERENCE_FPS", "")
	t.Setenv("JUDDER_FFPROBE", "")

	configPath := filepath.Join(base, "judder.toml")
	testsupport.WriteConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--no-color"}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (e *cliTestEnv) run(t *testing.T, args ...string) string {
	t.Helper()
	out, _, err := runCLI(t, args, e.configPath)
	if err != nil {
		t.Fatalf("judder %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// decodedLine mirrors the JSON shape of report.Line with colours left as CSS
// strings.
type decodedLine struct {
	DisplayFPS   float64 `json:"display_fps"`
	ReferenceFPS float64 `json:"reference_fps"`
	Frames       []struct {
		Index          int `json:"index"`
		Classification struct {
			Kind  cadence.Kind `json:"kind"`
			Color string       `json:"color"`
			Rule  string       `json:"rule"`
		} `json:"classification"`
	} `json:"frames"`
}
