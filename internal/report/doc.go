// Package report turns cadence classifications into per-rate lines,
// multi-rate matrices, and terminal renderings.
//
// BuildLine classifies one second of display frames against a reference;
// BuildMatrix does the same for many display rates concurrently. The render
// helpers produce go-pretty tables, colour swatch strips for terminals, and
// the per-frame info payload used by `judder frame`.
package report
