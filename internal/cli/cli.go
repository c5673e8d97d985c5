package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/config"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/export"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/pipeline"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig    string
	flagDaysBack  int
	flagYear      int
	flagDate      string
	flagGameURL   string
	flagOutputDir string
	flagCSVOnly   bool
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mlb-scraper",
		Short: "Collect MLB game results, box scores, and betting odds",
		Long: `Collects recent MLB game results from Baseball-Reference, enriches
them with betting odds and generated insights, and exports everything
to CSV files and a Google Sheets spreadsheet.`,
		SilenceUsage: true,
		RunE:         runPipeline,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "config.json", "Path to JSON config file")
	cmd.Flags().IntVar(&flagDaysBack, "days-back", 0, "Days of schedule to collect (overrides config)")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Season year (overrides config, 0 = current)")
	cmd.Flags().StringVar(&flagDate, "date", "", "Target date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&flagGameURL, "game-url", "", "Scrape a single box score URL instead of the schedule")
	cmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "CSV output directory (overrides config)")
	cmd.Flags().BoolVar(&flagCSVOnly, "csv-only", false, "Skip the Google Sheets export")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runPipeline is the main command logic
func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cfg)

	if err := initLogging(cfg); err != nil {
		return err
	}

	ctx := cmd.Context()

	var exporter pipeline.SheetExporter
	if !flagCSVOnly {
		sheets, err := export.NewSheetsExporter(ctx,
			cfg.CredentialsFile, cfg.SpreadsheetName,
			cfg.Sheets.ShareType, cfg.Sheets.ShareRole)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("Credentials file missing, running CSV-only", logger.Fields{
					"credentials_file": cfg.CredentialsFile,
				})
			} else {
				return fmt.Errorf("connecting to Google Sheets: %w", err)
			}
		} else {
			exporter = sheets
		}
	}

	opts := pipeline.Options{Sheets: exporter}
	if flagDate != "" {
		target, err := time.Parse(game.DateFormat, flagDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", flagDate)
		}
		opts.Now = func() time.Time { return target }
	}

	p, err := pipeline.New(cfg, opts)
	if err != nil {
		return err
	}

	var res *pipeline.Results
	if flagGameURL != "" {
		res = p.RunGameURL(ctx, flagGameURL)
	} else {
		res = p.Run(ctx)
	}

	logger.Info("Run metrics", logger.MetricsSnapshot())

	if err := WriteReport(os.Stdout, res); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if !res.Success {
		return fmt.Errorf("run completed with errors")
	}
	return nil
}

// applyFlags overlays command line flags onto the loaded config.
func applyFlags(cfg *config.Config) {
	if flagDaysBack > 0 {
		cfg.Scraping.DaysBack = flagDaysBack
	}
	if flagYear > 0 {
		cfg.Scraping.Year = flagYear
	}
	if flagOutputDir != "" {
		cfg.Export.OutputDirectory = flagOutputDir
	}
	if flagVerbose {
		cfg.Logging.Level = "DEBUG"
	}
}

// initLogging installs the default logger per config, with an optional
// log file alongside stdout.
func initLogging(cfg *config.Config) error {
	level := logger.ParseLevel(cfg.Logging.Level)
	if cfg.Logging.File == "" {
		logger.SetDefault(logger.New(level, os.Stdout))
		return nil
	}
	l, err := logger.NewWithFile(level, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logger.SetDefault(l)
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
