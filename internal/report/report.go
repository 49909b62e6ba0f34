package report

import (
	"context"
	"fmt"
	"sync"

	"judder/internal/cadence"
	"judder/internal/framerate"
)

// Frame is one classified display frame.
type Frame struct {
	Index          int                    `json:"index"`
	Alignment      cadence.Alignment      `json:"alignment"`
	Classification cadence.Classification `json:"classification"`
}

// Line is one second of display frames classified against a reference.
type Line struct {
	DisplayFPS   float64         `json:"display_fps"`
	ReferenceFPS float64         `json:"reference_fps"`
	Frames       []Frame         `json:"frames"`
	Summary      cadence.Summary `json:"summary"`
}

// Label names the line by its display rate.
func (l Line) Label() string {
	return framerate.Label(l.DisplayFPS)
}

// Classifications returns the per-frame classifications in order.
func (l Line) Classifications() []cadence.Classification {
	out := make([]cadence.Classification, len(l.Frames))
	for i, f := range l.Frames {
		out[i] = f.Classification
	}
	return out
}

// Only returns a copy of the line keeping the frames of the given kinds.
// The summary still covers every frame. No kinds keeps everything.
func (l Line) Only(kinds ...cadence.Kind) Line {
	if len(kinds) == 0 {
		return l
	}
	keep := make(map[cadence.Kind]bool, len(kinds))
	for _, k := range kinds {
		keep[k] = true
	}
	frames := make([]Frame, 0, len(l.Frames))
	for _, f := range l.Frames {
		if keep[f.Classification.Kind] {
			frames = append(frames, f)
		}
	}
	l.Frames = frames
	return l
}

// BuildLine classifies every frame of one second at display against ref.
func BuildLine(display, ref float64) Line {
	count := cadence.FrameCount(display)
	frames := make([]Frame, 0, count)
	for i := 0; i < count; i++ {
		a := cadence.ComputeAlignment(display, ref, i)
		frames = append(frames, Frame{
			Index:          i,
			Alignment:      a,
			Classification: cadence.ClassifyAlignment(display, ref, a),
		})
	}
	line := Line{DisplayFPS: display, ReferenceFPS: ref, Frames: frames}
	line.Summary = cadence.Summarize(line.Classifications())
	return line
}

// BuildMatrix builds a line per display rate, in input order, using up to
// workers goroutines.
func BuildMatrix(ctx context.Context, rates []float64, ref float64, workers int) ([]Line, error) {
	if err := framerate.Validate(ref); err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	for _, fps := range rates {
		if err := framerate.Validate(fps); err != nil {
			return nil, fmt.Errorf("display: %w", err)
		}
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(rates) {
		workers = len(rates)
	}

	lines := make([]Line, len(rates))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				lines[i] = BuildLine(rates[i], ref)
			}
		}()
	}

	var err error
feed:
	for i := range rates {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return lines, nil
}
