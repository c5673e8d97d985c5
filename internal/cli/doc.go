// Package cli implements the mlb-scraper command line interface: flag
// parsing, configuration loading, and the run report printed after a
// pipeline pass.
package cli
