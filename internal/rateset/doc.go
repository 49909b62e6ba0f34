// Package rateset persists the user's list of frame rates and the selected
// reference rate.
//
// The store is a small SQLite database under the configured state directory.
// First-run schema creation and seeding from config happen under an
// exclusive file lock so concurrent invocations agree on the initial set.
// Rates are keyed by their value rounded to a thousandth, so 24000/1001 and
// 23.976 name the same entry.
package rateset
