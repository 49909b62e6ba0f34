package report

import (
	"fmt"

	"judder/internal/cadence"
)

// FrameInfo is the detail payload for one frame: the raw alignment plus
// millisecond renderings and the outcome.
type FrameInfo struct {
	cadence.Alignment
	DisplayFPS   float64      `json:"display_fps"`
	ReferenceFPS float64      `json:"reference_fps"`
	Kind         cadence.Kind `json:"kind"`
	Rule         string       `json:"rule"`
	Color        string       `json:"color"`
	Hue          float64      `json:"hue,omitempty"`
	Millis       Millis       `json:"millis"`
}

// Millis holds the interval boundaries formatted for people.
type Millis struct {
	FrameStart         string `json:"frame_start"`
	FrameEnd           string `json:"frame_end"`
	FrameLength        string `json:"frame_length"`
	RefStartFrameStart string `json:"ref_start_frame_start"`
	RefEndFrameStart   string `json:"ref_end_frame_start"`
	RefFrameLength     string `json:"ref_frame_length"`
}

// NewFrameInfo computes the detail payload for one frame.
func NewFrameInfo(display, ref float64, frame int) FrameInfo {
	a := cadence.ComputeAlignment(display, ref, frame)
	c := cadence.ClassifyAlignment(display, ref, a)
	return FrameInfo{
		Alignment:    a,
		DisplayFPS:   display,
		ReferenceFPS: ref,
		Kind:         c.Kind,
		Rule:         c.Rule,
		Color:        c.Color.String(),
		Hue:          c.Hue,
		Millis: Millis{
			FrameStart:         FormatMillis(a.FrameStart),
			FrameEnd:           FormatMillis(a.FrameEnd),
			FrameLength:        FormatMillis(a.FrameLength),
			RefStartFrameStart: FormatMillis(a.RefStartFrameStart),
			RefEndFrameStart:   FormatMillis(a.RefEndFrameStart),
			RefFrameLength:     FormatMillis(a.RefFrameLength),
		},
	}
}

// FormatMillis renders seconds as milliseconds with three decimals.
func FormatMillis(seconds float64) string {
	return fmt.Sprintf("%.3fms", seconds*1000)
}
