// Package schedule fetches the Baseball-Reference yearly schedule page
// and extracts per-game score rows for the run's lookback window.
//
// The schedule page groups games under one h3 heading per day (for
// example "Saturday, July 12, 2025"); each game is a p.game paragraph
// whose text carries the matchup and final score, with an optional link
// to the box score page. A date with no heading simply yields no rows.
package schedule
