// Package export turns the pipeline's flat row slices into ordered
// tables and writes them out: CSV files in the output directory and
// worksheets in a Google Sheets spreadsheet. Both destinations share
// the same Table snapshot, so headers always match between the two.
//
// Sheet updates merge by key columns with last write winning, which
// makes re-running the pipeline for the same dates idempotent.
package export
