package cadence

import "math"

const (
	// StartBias nudges the start boundary forward before flooring so a start
	// that lands a hair below a reference boundary resolves to the frame it
	// begins, not the one before it.
	StartBias = 1e-5
	// Tolerance is the absolute window, in seconds, within which two
	// boundaries are treated as the same instant.
	Tolerance = 1e-6
)

// Alignment describes one display frame against the reference grid.
type Alignment struct {
	Frame       int     `json:"frame_number"`
	StartsExact bool    `json:"starts_exact"`
	EndsExact   bool    `json:"ends_exact"`
	FrameStart  float64 `json:"frame_start"`
	FrameEnd    float64 `json:"frame_end"`
	FrameLength float64 `json:"frame_length"`

	RefStartFrame      int     `json:"ref_start_frame"`
	RefStartFrameStart float64 `json:"ref_start_frame_start"`
	RefStartFrameEnd   float64 `json:"ref_start_frame_end"`
	RefEndFrame        int     `json:"ref_end_frame"`
	RefEndFrameStart   float64 `json:"ref_end_frame_start"`
	RefEndFrameEnd     float64 `json:"ref_end_frame_end"`
	RefFrameLength     float64 `json:"ref_frame_length"`
}

// ComputeAlignment derives the alignment of display frame number frame when
// displayFPS frames are shown against a referenceFPS grid.
func ComputeAlignment(displayFPS, referenceFPS float64, frame int) Alignment {
	frameLength := 1 / displayFPS
	refFrameLength := 1 / referenceFPS

	// Explicit float64 conversions keep products rounded before they are
	// summed; fused multiply-add would otherwise shift boundary results.
	frameStart := float64(frameLength * float64(frame))
	frameEnd := frameStart + frameLength

	refStart := int(math.Floor(frameStart/refFrameLength + StartBias))
	refStartFrameStart := float64(float64(refStart) * refFrameLength)

	refEnd := int(math.Floor(frameEnd / refFrameLength))
	refEndFrameStart := float64(float64(refEnd) * refFrameLength)

	return Alignment{
		Frame:              frame,
		StartsExact:        NearlySame(frameStart, refStartFrameStart),
		EndsExact:          NearlySame(frameEnd, refEndFrameStart),
		FrameStart:         frameStart,
		FrameEnd:           frameEnd,
		FrameLength:        frameLength,
		RefStartFrame:      refStart,
		RefStartFrameStart: refStartFrameStart,
		RefStartFrameEnd:   refStartFrameStart + refFrameLength,
		RefEndFrame:        refEnd,
		RefEndFrameStart:   refEndFrameStart,
		RefEndFrameEnd:     refEndFrameStart + refFrameLength,
		RefFrameLength:     refFrameLength,
	}
}

// NearlySame reports whether t1 lies within Tolerance of t2, inclusive.
func NearlySame(t1, t2 float64) bool {
	return t1 >= t2-Tolerance && t1 <= t2+Tolerance
}

// FrameCount is the number of display frames in one second at fps.
func FrameCount(fps float64) int {
	return int(math.Floor(fps))
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
