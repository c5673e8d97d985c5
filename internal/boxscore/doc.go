// Package boxscore fetches Baseball-Reference box score pages and
// extracts the per-game detail tables: batting lines, pitching lines,
// starting lineups, and game-level metadata.
//
// Baseball-Reference hides most stat tables inside HTML comments so
// they render lazily in the browser. The fetcher strips the comment
// markers from the raw page before parsing, which makes every table
// visible to the selector queries.
package boxscore
