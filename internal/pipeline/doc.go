// Package pipeline orchestrates one scraping run, strictly in order:
// schedule, box scores, odds, insights, export. Stages after the
// schedule fetch log their failures and keep going; the Results summary
// collects every error for the final report.
package pipeline
