package main

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"judder/internal/testsupport"
)

func TestRatesLifecycle(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithRates(24, 30, 60))

	out := env.run(t, "rates", "list")
	requireContains(t, out, "24 fps (Film)")
	requireContains(t, out, "60 fps")

	out = env.run(t, "rates", "add", "48", "pal")
	requireContains(t, out, "Added 48 fps")
	requireContains(t, out, "Added 25 fps (Pal)")

	var entries []rateEntry
	if err := json.Unmarshal([]byte(env.run(t, "rates", "list", "--json")), &entries); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Label)
	}
	if strings.Join(got, ",") != "24 fps (Film),25 fps (Pal),30 fps,48 fps,60 fps" {
		t.Fatalf("unexpected rate set %v", got)
	}

	requireContains(t, env.run(t, "rates", "remove", "48"), "Removed 48 fps")
	_, _, err := runCLI(t, []string{"rates", "remove", "48"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "not in the rate set") {
		t.Fatalf("expected not-found error, got %v", err)
	}

	requireContains(t, env.run(t, "rates", "reset"), "Rate set reset to 3 rates")
	if strings.Contains(env.run(t, "rates", "list"), "25 fps") {
		t.Fatal("reset should drop added rates")
	}
}

func TestRatesAddRejectsInvalidRate(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"rates", "add", "-5"}, env.configPath); err == nil {
		t.Fatal("expected error for negative rate")
	}
	if _, _, err := runCLI(t, []string{"rates", "add"}, env.configPath); err == nil {
		t.Fatal("expected error when no rate is given")
	}
}

func TestReferenceCommands(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithRates(24, 60))

	requireContains(t, env.run(t, "reference"), "30 fps (configured default)")

	requireContains(t, env.run(t, "reference", "set", "ntsc"), "Reference set to 29.97 fps (Ntsc)")
	requireContains(t, env.run(t, "reference", "show"), "29.97 fps (Ntsc)")

	list := env.run(t, "rates", "list", "--json")
	var entries []rateEntry
	if err := json.Unmarshal([]byte(list), &entries); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	var marked []float64
	for _, e := range entries {
		if e.Reference {
			marked = append(marked, e.FPS)
		}
	}
	if len(marked) != 1 || marked[0] != 29.97 {
		t.Fatalf("expected 29.97 marked as reference, got %v", marked)
	}

	env.run(t, "rates", "remove", "29.97")
	requireContains(t, env.run(t, "reference"), "configured default")
}

func TestCommandsLogWithCorrelationID(t *testing.T) {
	env := setupCLITestEnv(t)

	env.run(t, "rates", "add", "48")
	content, err := os.ReadFile(env.cfg.LogPath())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	log := string(content)
	requireContains(t, log, `"msg":"rate added"`)
	requireContains(t, log, `"correlation_id":"`)
	requireContains(t, log, `"command":"judder rates add"`)
}
