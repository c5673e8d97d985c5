package cli

import (
	"strings"
	"testing"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/config"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/pipeline"
)

func TestNewRootCmdFlags(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{
		"config", "days-back", "year", "date", "game-url", "output-dir", "csv-only", "verbose",
	} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Missing flag --%s", name)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	flagDaysBack = 3
	flagYear = 2024
	flagOutputDir = "/tmp/out"
	flagVerbose = true
	defer func() {
		flagDaysBack = 0
		flagYear = 0
		flagOutputDir = ""
		flagVerbose = false
	}()

	cfg := config.Default()
	applyFlags(cfg)

	if cfg.Scraping.DaysBack != 3 {
		t.Errorf("DaysBack = %d, want 3", cfg.Scraping.DaysBack)
	}
	if cfg.Scraping.Year != 2024 {
		t.Errorf("Year = %d, want 2024", cfg.Scraping.Year)
	}
	if cfg.Export.OutputDirectory != "/tmp/out" {
		t.Errorf("OutputDirectory = %q", cfg.Export.OutputDirectory)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Logging.Level = %q, want DEBUG", cfg.Logging.Level)
	}
}

func TestApplyFlagsZeroValuesKeepConfig(t *testing.T) {
	cfg := config.Default()
	days := cfg.Scraping.DaysBack
	applyFlags(cfg)

	if cfg.Scraping.DaysBack != days {
		t.Errorf("DaysBack changed to %d with no flags set", cfg.Scraping.DaysBack)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Logging.Level = %q, want INFO", cfg.Logging.Level)
	}
}

func TestWriteReport(t *testing.T) {
	res := &pipeline.Results{
		RunID:           "run-123",
		ScheduleRecords: 15,
		BattingRecords:  240,
		InsightRecords:  15,
		SheetURL:        "https://docs.google.com/spreadsheets/d/abc",
		CSVFiles:        []string{"output/mlb_daily_scores.csv"},
		Success:         true,
	}

	var buf strings.Builder
	if err := WriteReport(&buf, res); err != nil {
		t.Fatalf("WriteReport returned error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"run-123 completed",
		"Schedule records:",
		"15",
		"output/mlb_daily_scores.csv",
		"https://docs.google.com/spreadsheets/d/abc",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "error(s)") {
		t.Errorf("Report should not mention errors:\n%s", out)
	}
}

func TestWriteReportFailure(t *testing.T) {
	res := &pipeline.Results{
		RunID:  "run-456",
		Errors: []string{"schedule fetch: status 500"},
	}

	var buf strings.Builder
	if err := WriteReport(&buf, res); err != nil {
		t.Fatalf("WriteReport returned error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "run-456 FAILED") {
		t.Errorf("Report missing failure status:\n%s", out)
	}
	if !strings.Contains(out, "schedule fetch: status 500") {
		t.Errorf("Report missing error detail:\n%s", out)
	}
}
