package report

import (
	"encoding/json"
	"testing"

	"judder/internal/cadence"
)

func TestFormatMillis(t *testing.T) {
	cases := map[float64]string{
		0:            "0.000ms",
		1.0 / 24:     "41.667ms",
		1.0 / 60:     "16.667ms",
		2.5:          "2500.000ms",
		1.0 / 23.976: "41.708ms",
	}
	for in, want := range cases {
		if got := FormatMillis(in); got != want {
			t.Fatalf("FormatMillis(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestNewFrameInfoPartial(t *testing.T) {
	info := NewFrameInfo(30, 24, 1)
	if info.Kind != cadence.Partial || info.Rule != "partial" {
		t.Fatalf("unexpected outcome %+v", info)
	}
	if info.Hue != 85 || info.Color != "hsl(85deg, 100%, 50%)" {
		t.Fatalf("unexpected colour %v %q", info.Hue, info.Color)
	}
	if info.Millis.FrameStart != "33.333ms" || info.Millis.RefFrameLength != "41.667ms" {
		t.Fatalf("unexpected millis %+v", info.Millis)
	}
}

func TestFrameInfoJSONFlattensAlignment(t *testing.T) {
	raw, err := json.Marshal(NewFrameInfo(24, 60, 3))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"frame_number", "starts_exact", "ref_end_frame", "kind", "rule", "color", "millis"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing %q in %s", key, raw)
		}
	}
	if decoded["kind"] != "doubled" || decoded["color"] != "#f00" {
		t.Fatalf("unexpected outcome in %s", raw)
	}
	if _, ok := decoded["hue"]; ok {
		t.Fatalf("hue should be omitted for non-partial frames: %s", raw)
	}
}
