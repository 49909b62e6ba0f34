// Package preflight provides the readiness checks behind `judder doctor`:
// the state and log directories must be usable, the rate store must open,
// and ffprobe should be installed for `judder probe`.
package preflight
