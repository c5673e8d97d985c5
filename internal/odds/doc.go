// Package odds fetches MLB betting odds from The Odds API and
// normalizes them into long-form rows: one row per bookmaker, market,
// and side. Team names coming back from the API are standardized
// through a configurable map so odds rows join cleanly against the
// scraped game tables.
package odds
