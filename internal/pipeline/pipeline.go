package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/boxscore"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/config"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/export"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/insights"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/odds"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/schedule"
)

// SheetExporter is the spreadsheet side of the export stage. It is an
// interface so runs without credentials (and tests) can skip it.
type SheetExporter interface {
	UpdateTable(ctx context.Context, t export.Table) error
	URL() string
}

// Options tune a pipeline beyond its config.
type Options struct {
	// Sheets receives every table; nil means CSV-only.
	Sheets SheetExporter
	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

// Results summarizes one run for the final report and the exit code.
type Results struct {
	RunID string

	ScheduleRecords int
	BattingRecords  int
	PitchingRecords int
	LineupRecords   int
	GameInfoRecords int
	OddsRecords     int
	InsightRecords  int

	SheetURL string
	CSVFiles []string
	Errors   []string

	// Success is false after a fatal error or any export failure.
	// Per-game scrape errors are recorded but do not fail the run.
	Success bool
}

func (r *Results) addError(err error) {
	r.Errors = append(r.Errors, err.Error())
}

func (r *Results) fail(err error) {
	r.addError(err)
	r.Success = false
}

// Pipeline wires the stages together.
type Pipeline struct {
	cfg *config.Config

	schedule *schedule.Scraper
	box      *boxscore.Scraper
	odds     *odds.Client
	insights insights.Generator
	csv      *export.CSVWriter
	sheets   SheetExporter

	now func() time.Time
}

// New builds a Pipeline from config. Preparing the output directory is
// the only part that can fail.
func New(cfg *config.Config, opts Options) (*Pipeline, error) {
	csvWriter, err := export.NewCSVWriter(cfg.Export.OutputDirectory, cfg.Export.IncludeTimestamp)
	if err != nil {
		return nil, fmt.Errorf("preparing output directory: %w", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Pipeline{
		cfg:      cfg,
		schedule: schedule.New(cfg.Scraping.BaseURL, cfg.Scraping.UserAgent),
		box:      boxscore.New(cfg.Scraping.UserAgent),
		odds:     odds.New(cfg.OddsAPI),
		insights: insights.ForConfig(cfg.Insights),
		csv:      csvWriter,
		sheets:   opts.Sheets,
		now:      now,
	}, nil
}

// scraped pairs a schedule record with its parsed box score.
type scraped struct {
	record *game.Record
	box    *boxscore.BoxScore
}

// Run executes a full pipeline pass and returns its summary. Only a
// schedule fetch failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) *Results {
	res := &Results{
		RunID:   uuid.NewString(),
		Success: true,
	}
	today := p.now()

	year := p.cfg.Scraping.Year
	if year == 0 {
		year = today.Year()
	}
	dates := game.LookbackDates(today, p.cfg.Scraping.DaysBack)

	logger.Info("Starting pipeline run", logger.Fields{
		"run_id":    res.RunID,
		"year":      year,
		"days_back": p.cfg.Scraping.DaysBack,
	})

	records, err := p.schedule.RecentGames(year, dates)
	if err != nil {
		res.fail(fmt.Errorf("schedule fetch: %w", err))
		return res
	}
	res.ScheduleRecords = len(records)

	var games []scraped
	if p.cfg.Pipeline.FetchPastGames {
		games = p.scrapeBoxScores(records, res)
	}

	oddsLines := p.fetchOdds(records, today, res)
	notes := p.generateInsights(games, oddsLines, res)

	p.export(ctx, today, res, p.buildTables(records, games, oddsLines, notes))
	return res
}

// RunGameURL scrapes a single box score page and exports only its
// detail tables. Used for spot checks against one game.
func (p *Pipeline) RunGameURL(ctx context.Context, gameURL string) *Results {
	res := &Results{
		RunID:   uuid.NewString(),
		Success: true,
	}
	today := p.now()

	logger.Info("Starting single-game run", logger.Fields{
		"run_id": res.RunID,
		"url":    gameURL,
	})

	box, err := p.box.Fetch(gameURL)
	if err != nil {
		res.fail(fmt.Errorf("box score fetch: %w", err))
		return res
	}
	games := []scraped{{box: box}}
	notes := p.generateInsights(games, nil, res)

	p.export(ctx, today, res, p.buildTables(nil, games, nil, notes))
	return res
}

// scrapeBoxScores walks the linked games, honoring the configured
// delay between requests. Failures skip the game.
func (p *Pipeline) scrapeBoxScores(records []*game.Record, res *Results) []scraped {
	delay := time.Duration(p.cfg.Scraping.DelaySeconds) * time.Second
	games := make([]scraped, 0, len(records))

	for _, rec := range records {
		if !rec.HasBoxScore() {
			logger.Debug("No box score link, skipping detail", logger.Fields{
				"date": rec.Date,
				"away": rec.AwayTeam,
				"home": rec.HomeTeam,
			})
			continue
		}
		if len(games) > 0 && delay > 0 {
			time.Sleep(delay)
		}

		box, err := p.box.Fetch(rec.BoxScoreURL)
		if err != nil {
			logger.Error("Box score scrape failed", logger.Fields{
				"url": rec.BoxScoreURL,
			}, err)
			res.addError(fmt.Errorf("box score %s: %w", rec.BoxScoreURL, err))
			continue
		}

		fillInfo(&box.Info, rec)
		games = append(games, scraped{record: rec, box: box})
	}
	return games
}

// fillInfo backfills box score metadata from the schedule row, which is
// authoritative for the matchup and usually carries the final score.
func fillInfo(info *game.Info, rec *game.Record) {
	if info.GameDate == "" {
		info.GameDate = rec.Date
	}
	if info.AwayTeam == "" {
		info.AwayTeam = rec.AwayTeam
	}
	if info.HomeTeam == "" {
		info.HomeTeam = rec.HomeTeam
	}
	if info.AwayScore == nil {
		info.AwayScore = rec.AwayScore
	}
	if info.HomeScore == nil {
		info.HomeScore = rec.HomeScore
	}
	info.Decide()
}

// fetchOdds pulls odds for every distinct game date, plus the upcoming
// window when configured. Odds failures never abort the run.
func (p *Pipeline) fetchOdds(records []*game.Record, today time.Time, res *Results) []game.OddsLine {
	if !p.odds.Enabled() {
		logger.Info("Odds collection disabled, no API key", nil)
		return nil
	}

	dates := make([]string, 0)
	seen := make(map[string]bool)
	for _, rec := range records {
		if !seen[rec.Date] {
			seen[rec.Date] = true
			dates = append(dates, rec.Date)
		}
	}
	if up := p.cfg.Pipeline.FetchUpcomingOdds; up.Enabled {
		for i := 1; i <= up.DaysForward; i++ {
			d := today.AddDate(0, 0, i).Format(game.DateFormat)
			if !seen[d] {
				seen[d] = true
				dates = append(dates, d)
			}
		}
	}

	lines := make([]game.OddsLine, 0)
	for _, date := range dates {
		dayLines, err := p.odds.FetchForDate(date)
		if err != nil {
			logger.Error("Odds fetch failed", logger.Fields{
				"date": date,
			}, err)
			res.addError(fmt.Errorf("odds for %s: %w", date, err))
			continue
		}
		lines = append(lines, dayLines...)
	}
	return lines
}

// generateInsights produces one note per scraped game. Generator
// failures skip the game.
func (p *Pipeline) generateInsights(games []scraped, oddsLines []game.OddsLine, res *Results) []game.InsightNote {
	if !p.cfg.Insights.Enabled {
		return nil
	}

	teamNames := game.DefaultTeamNameMap()
	notes := make([]game.InsightNote, 0, len(games))
	for _, g := range games {
		data := insights.GameData{
			Info:     g.box.Info,
			Batting:  g.box.Batting,
			Pitching: g.box.Pitching,
			Lineups:  g.box.Lineups,
			Odds: odds.ForMatchup(oddsLines,
				game.StandardTeamName(g.box.Info.HomeTeam, teamNames),
				game.StandardTeamName(g.box.Info.AwayTeam, teamNames)),
		}
		note, err := p.insights.Generate(data)
		if err != nil {
			logger.Error("Insight generation failed", logger.Fields{
				"date": data.Info.GameDate,
				"home": data.Info.HomeTeam,
			}, err)
			res.addError(fmt.Errorf("insights for %s at %s: %w",
				data.Info.AwayTeam, data.Info.HomeTeam, err))
			continue
		}
		notes = append(notes, note)
	}
	return notes
}

// buildTables assembles all output tables and updates the counters.
func (p *Pipeline) buildTables(records []*game.Record, games []scraped, oddsLines []game.OddsLine, notes []game.InsightNote) []export.Table {
	var (
		batting  []game.BattingLine
		pitching []game.PitchingLine
		lineups  []game.LineupEntry
		infos    []game.Info
	)
	for _, g := range games {
		batting = append(batting, g.box.Batting...)
		pitching = append(pitching, g.box.Pitching...)
		lineups = append(lineups, g.box.Lineups...)
		infos = append(infos, g.box.Info)
	}

	tables := make([]export.Table, 0, 7)
	if len(records) > 0 {
		tables = append(tables, export.ScoresTable(p.cfg.WorksheetTitle("scores"), records))
	}
	tables = append(tables,
		export.BattingTable(p.cfg.WorksheetTitle("batting"), batting),
		export.PitchingTable(p.cfg.WorksheetTitle("pitching"), pitching),
		export.LineupsTable(p.cfg.WorksheetTitle("lineups"), lineups),
		export.GameInfoTable(p.cfg.WorksheetTitle("summary"), infos),
		export.OddsTable(p.cfg.WorksheetTitle("betting"), oddsLines),
		export.InsightsTable(p.cfg.WorksheetTitle("insights"), notes),
	)
	return tables
}

// export writes every non-empty table to CSV and, when configured, the
// spreadsheet. Any export failure marks the run unsuccessful.
func (p *Pipeline) export(ctx context.Context, now time.Time, res *Results, tables []export.Table) {
	for _, t := range tables {
		p.count(res, t)

		path, err := p.csv.WriteTable(t, now)
		if err != nil {
			logger.Error("CSV export failed", logger.Fields{
				"table": t.Title,
			}, err)
			res.fail(fmt.Errorf("csv export %s: %w", t.Title, err))
		} else if path != "" {
			res.CSVFiles = append(res.CSVFiles, path)
		}

		if p.sheets == nil {
			continue
		}
		if err := p.sheets.UpdateTable(ctx, t); err != nil {
			logger.Error("Sheet export failed", logger.Fields{
				"table": t.Title,
			}, err)
			res.fail(fmt.Errorf("sheet export %s: %w", t.Title, err))
		}
	}

	if p.sheets != nil {
		res.SheetURL = p.sheets.URL()
	}
}

// count records the row count of a table in the Results summary and
// the run metrics.
func (p *Pipeline) count(res *Results, t export.Table) {
	logger.IncrCounter("rows."+t.Key, int64(len(t.Rows)))
	switch t.Key {
	case "scores":
		res.ScheduleRecords = len(t.Rows)
	case "batting":
		res.BattingRecords = len(t.Rows)
	case "pitching":
		res.PitchingRecords = len(t.Rows)
	case "lineups":
		res.LineupRecords = len(t.Rows)
	case "summary":
		res.GameInfoRecords = len(t.Rows)
	case "betting":
		res.OddsRecords = len(t.Rows)
	case "insights":
		res.InsightRecords = len(t.Rows)
	}
}
