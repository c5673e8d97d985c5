package cli

import (
	"fmt"
	"io"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/pipeline"
)

// WriteReport prints the human-readable run summary.
func WriteReport(w io.Writer, res *pipeline.Results) error {
	status := "completed"
	if !res.Success {
		status = "FAILED"
	}
	fmt.Fprintf(w, "\nRun %s %s\n", res.RunID, status)

	rows := []struct {
		label string
		count int
	}{
		{"Schedule records", res.ScheduleRecords},
		{"Batting lines", res.BattingRecords},
		{"Pitching lines", res.PitchingRecords},
		{"Lineup entries", res.LineupRecords},
		{"Game summaries", res.GameInfoRecords},
		{"Odds lines", res.OddsRecords},
		{"Insight notes", res.InsightRecords},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-18s %d\n", r.label+":", r.count)
	}

	if len(res.CSVFiles) > 0 {
		fmt.Fprintln(w, "\nCSV files:")
		for _, f := range res.CSVFiles {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	if res.SheetURL != "" {
		fmt.Fprintf(w, "\nSpreadsheet: %s\n", res.SheetURL)
	}

	if len(res.Errors) > 0 {
		fmt.Fprintf(w, "\n%d error(s):\n", len(res.Errors))
		for _, e := range res.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	return nil
}
