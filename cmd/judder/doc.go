// Package main hosts the judder CLI entrypoint and command graph.
//
// The Cobra-based command tree classifies display frames against a reference
// rate, manages the persisted rate set and reference selection, probes media
// files with ffprobe, and scaffolds configuration. It centralizes config
// resolution, rate store access, and logger setup so subcommands only render.
package main
