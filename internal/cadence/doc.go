// Package cadence classifies how display frames line up against a reference
// frame grid.
//
// Given a display rate and a reference rate, ComputeAlignment derives the
// display frame's time interval and the reference frames covering its start
// and end. Classify runs an ordered rule chain over that alignment and
// reports one of Exact, Doubled, Skipped, Partial, or Unclassified together
// with the colour used to present it.
//
// Everything here is pure: no state survives between calls, so callers may
// classify frames from any number of goroutines. Rate validation belongs to
// the caller (see internal/framerate); the functions assume positive, finite
// rates.
package cadence
