// Package config loads, normalizes, and validates judder configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// JUDDER_REFERENCE_FPS. The Config type centralizes every knob the CLI needs:
// where the rate store and logs live, which rates to seed, and which
// reference rate to analyze against when none is chosen explicitly.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, validated frame rates, and clear validation errors.
package config
