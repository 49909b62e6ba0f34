// Package framerate parses, validates, and formats frame rates.
//
// Rates arrive from flags, config files, the rate store, and ffprobe output
// in several spellings: plain decimals ("23.976"), rationals ("24000/1001"),
// and broadcast names ("ntsc-film"). Parse accepts all of them; Validate
// enforces the positive, finite, at-least-one-frame contract that the
// cadence analyzer relies on.
package framerate
