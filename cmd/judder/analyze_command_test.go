package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"judder/internal/cadence"
	"judder/internal/framerate"
	"judder/internal/testsupport"
)

func TestAnalyzeRendersStripAndSummary(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "analyze", "--fps", "30", "--ref", "24")
	requireContains(t, out, "30 fps on 24 fps (Film)")
	requireContains(t, out, strings.Repeat("EPPPS", 6))
	requireContains(t, out, "E=exact")
	requireContains(t, out, "Partial")
	if strings.Contains(out, "Starts Exact") {
		t.Fatalf("per-frame table should need --frames:\n%s", out)
	}
}

func TestAnalyzeFramesTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "analyze", "--fps", "film", "--ref", "60", "--frames")
	requireContains(t, out, "Starts Exact")
	requireContains(t, out, "doubled")
	requireContains(t, out, "41.667ms")
}

func TestAnalyzeOnlyKinds(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "analyze", "--fps", "30", "--ref", "24", "--only", "skipped")
	requireContains(t, out, "Starts Exact")
	requireContains(t, out, "#00f")
	if strings.Contains(out, "hsl(") {
		t.Fatalf("partial frames should be filtered out:\n%s", out)
	}
	requireContains(t, out, "samerate > doubled")

	out = env.run(t, "analyze", "--fps", "30", "--ref", "24", "--only", "Exact, partial")
	requireContains(t, out, "hsl(85deg, 100%, 50%)")
	if strings.Contains(out, "#00f") {
		t.Fatalf("skipped frames should be filtered out:\n%s", out)
	}

	_, _, err := runCLI(t, []string{"analyze", "--fps", "30", "--only", "blended"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "want one of exact") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestAnalyzeJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "analyze", "--fps", "24000/1001", "--ref", "24", "--json")
	var line decodedLine
	if err := json.Unmarshal([]byte(out), &line); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(line.Frames) != 23 || line.ReferenceFPS != 24 {
		t.Fatalf("unexpected line: %d frames against %v", len(line.Frames), line.ReferenceFPS)
	}
	if line.Frames[0].Classification.Kind != cadence.Doubled {
		t.Fatalf("expected first frame doubled, got %s", line.Frames[0].Classification.Kind)
	}
}

func TestAnalyzeUsesSelectedReference(t *testing.T) {
	env := setupCLITestEnv(t)

	env.run(t, "reference", "set", "60")
	out := env.run(t, "analyze", "--fps", "24")
	requireContains(t, out, "24 fps (Film) on 60 fps")
	requireContains(t, out, strings.Repeat("D", 24))
}

func TestAnalyzeFallsBackToConfiguredReference(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReference(25))

	out := env.run(t, "analyze", "--fps", "25")
	requireContains(t, out, "25 fps (Pal) on 25 fps (Pal)")
	requireContains(t, out, strings.Repeat("E", 25))
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"analyze"}, env.configPath); err == nil {
		t.Fatal("expected error when --fps is missing")
	}
	_, _, err := runCLI(t, []string{"analyze", "--fps", "0"}, env.configPath)
	if !errors.Is(err, framerate.ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	_, _, err = runCLI(t, []string{"analyze", "--fps", "24", "--ref", "nope"}, env.configPath)
	if !errors.Is(err, framerate.ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate for bad reference, got %v", err)
	}
}

func TestFrameCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "frame", "--fps", "30", "--ref", "24", "1")
	var info map[string]any
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if info["kind"] != "partial" || info["color"] != "hsl(85deg, 100%, 50%)" {
		t.Fatalf("unexpected frame info: %v", info)
	}
	if info["frame_number"] != float64(1) {
		t.Fatalf("unexpected frame number: %v", info["frame_number"])
	}

	if _, _, err := runCLI(t, []string{"frame", "--fps", "30", "--ref", "24", "30"}, env.configPath); err == nil {
		t.Fatal("expected out of range error")
	}
	if _, _, err := runCLI(t, []string{"frame", "--fps", "30", "--ref", "24", "x"}, env.configPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMatrixCommand(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithRates(24, 25, 30))

	out := env.run(t, "matrix", "--ref", "30")
	requireContains(t, out, "Reference: 30 fps")
	requireContains(t, out, "30 │"+strings.Repeat("E", 30))
	requireContains(t, out, "25 fps (Pal)")

	jsonOut := env.run(t, "matrix", "--ref", "30", "--json")
	var lines []decodedLine
	if err := json.Unmarshal([]byte(jsonOut), &lines); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(lines) != 3 || lines[0].DisplayFPS != 24 || lines[2].DisplayFPS != 30 {
		t.Fatalf("unexpected matrix: %+v", lines)
	}
}
