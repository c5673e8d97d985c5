// Package game defines the flat row types produced by one scraping run:
// score rows, batting and pitching lines, starting lineups, game-level
// metadata, betting odds, and narrative insight notes.
//
// All rows are keyed by a (date, away team, home team) tuple or a derived
// game ID and live only for the duration of a run; the exported sheet and
// CSV files are the sole persistent outputs.
package game
