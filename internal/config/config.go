package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is the full settings tree for one pipeline run.
type Config struct {
	CredentialsFile string `json:"credentials_file"`
	SpreadsheetName string `json:"spreadsheet_name"`

	Scraping Scraping `json:"scraping"`
	OddsAPI  OddsAPI  `json:"odds_api"`
	Insights Insights `json:"llm_insights"`
	Export   Export   `json:"data_export"`
	Sheets   Sheets   `json:"google_sheets"`
	Pipeline Pipeline `json:"pipeline_settings"`
	Logging  Logging  `json:"logging"`
}

// Scraping controls the Baseball-Reference fetchers.
type Scraping struct {
	BaseURL      string `json:"base_url"`
	Year         int    `json:"year"`           // 0 means current year
	DaysBack     int    `json:"days_back"`      // lookback window
	DelaySeconds int    `json:"delay_between_requests"`
	UserAgent    string `json:"user_agent"`
}

// OddsAPI configures The Odds API client. An empty APIKey disables odds
// collection for the run.
type OddsAPI struct {
	APIKey      string            `json:"api_key"`
	BaseURL     string            `json:"base_url"`
	Regions     string            `json:"regions"`
	Markets     string            `json:"markets"`
	OddsFormat  string            `json:"odds_format"`
	DateFormat  string            `json:"date_format"`
	TeamNameMap map[string]string `json:"team_name_map,omitempty"`
}

// Insights configures the narrative note generator. With Enabled set and
// no APIKey, the pipeline falls back to the local heuristic generator.
type Insights struct {
	Enabled   bool   `json:"enabled"`
	APIKey    string `json:"api_key"`
	BaseURL   string `json:"base_url"`
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
}

// Export controls CSV output.
type Export struct {
	OutputDirectory  string `json:"output_directory"`
	IncludeTimestamp bool   `json:"include_timestamp"`
}

// Sheets controls the spreadsheet destination.
type Sheets struct {
	Worksheets map[string]string `json:"worksheets"`
	ShareType  string            `json:"share_type"`
	ShareRole  string            `json:"share_role"`
}

// Pipeline holds run-shape toggles.
type Pipeline struct {
	FetchPastGames    bool              `json:"fetch_past_games"`
	FetchUpcomingOdds FetchUpcomingOdds `json:"fetch_upcoming_odds"`
}

// FetchUpcomingOdds optionally extends the odds window forward to cover
// games that have not been played yet.
type FetchUpcomingOdds struct {
	Enabled     bool `json:"enabled"`
	DaysForward int  `json:"days_forward"`
}

// Logging selects level and optional log file.
type Logging struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

// Worksheet config keys and their default tab titles.
var defaultWorksheets = map[string]string{
	"scores":   "Daily Scores",
	"batting":  "Batting Stats",
	"pitching": "Pitching Stats",
	"lineups":  "Lineup Info",
	"summary":  "Game Info",
	"betting":  "Betting Odds",
	"insights": "Game Insights",
}

// Default returns the built-in configuration, matching the documented
// config.json shape.
func Default() *Config {
	return &Config{
		CredentialsFile: "credentials.json",
		SpreadsheetName: "MLB Data Analysis",
		Scraping: Scraping{
			BaseURL:      "https://www.baseball-reference.com",
			DaysBack:     1,
			DelaySeconds: 2,
			UserAgent:    "mlb-sports-data-scraper/1.0 (github.com/Norbert49/MLB-Sports-Data-Scraper)",
		},
		OddsAPI: OddsAPI{
			BaseURL:    "https://api.the-odds-api.com",
			Regions:    "us",
			Markets:    "h2h,spreads,totals",
			OddsFormat: "decimal",
			DateFormat: "iso",
		},
		Insights: Insights{
			BaseURL:   "https://api.openai.com",
			Model:     "gpt-4o-mini",
			MaxTokens: 400,
		},
		Export: Export{
			OutputDirectory:  "output",
			IncludeTimestamp: true,
		},
		Sheets: Sheets{
			Worksheets: copyWorksheets(defaultWorksheets),
			ShareType:  "anyone",
			ShareRole:  "reader",
		},
		Pipeline: Pipeline{
			FetchPastGames: true,
		},
		Logging: Logging{
			Level: "INFO",
		},
	}
}

func copyWorksheets(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Load reads configuration: defaults, overlaid by the JSON file at path
// (if it exists), overlaid by environment variables. A .env file in the
// working directory is loaded first so its variables behave like
// ordinary environment variables.
func Load(path string) (*Config, error) {
	// Ignore a missing .env; it is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("ODDS_API_KEY"); v != "" {
		c.OddsAPI.APIKey = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.Insights.APIKey = v
	}
	if v := os.Getenv("GOOGLE_CREDENTIALS_FILE"); v != "" {
		c.CredentialsFile = v
	}
	if v := os.Getenv("MLB_SPREADSHEET_NAME"); v != "" {
		c.SpreadsheetName = v
	}
	if v := os.Getenv("MLB_OUTPUT_DIR"); v != "" {
		c.Export.OutputDirectory = v
	}
}

// Validate checks settings and fills gaps with defaults so downstream
// components never see zero values where a default exists.
func (c *Config) Validate() error {
	if c.Scraping.BaseURL == "" {
		return fmt.Errorf("scraping.base_url must not be empty")
	}
	if c.Scraping.DaysBack < 1 {
		c.Scraping.DaysBack = 1
	}
	if c.Scraping.DelaySeconds < 0 {
		return fmt.Errorf("scraping.delay_between_requests must not be negative")
	}
	if c.SpreadsheetName == "" {
		return fmt.Errorf("spreadsheet_name must not be empty")
	}
	if c.Export.OutputDirectory == "" {
		c.Export.OutputDirectory = "output"
	}
	if c.OddsAPI.BaseURL == "" {
		c.OddsAPI.BaseURL = "https://api.the-odds-api.com"
	}
	if c.Insights.BaseURL == "" {
		c.Insights.BaseURL = "https://api.openai.com"
	}
	if c.Insights.Model == "" {
		c.Insights.Model = "gpt-4o-mini"
	}
	if c.Insights.MaxTokens <= 0 {
		c.Insights.MaxTokens = 400
	}
	if c.Sheets.Worksheets == nil {
		c.Sheets.Worksheets = copyWorksheets(defaultWorksheets)
	} else {
		for key, title := range defaultWorksheets {
			if _, ok := c.Sheets.Worksheets[key]; !ok {
				c.Sheets.Worksheets[key] = title
			}
		}
	}
	if c.Sheets.ShareType == "" {
		c.Sheets.ShareType = "anyone"
	}
	if c.Sheets.ShareRole == "" {
		c.Sheets.ShareRole = "reader"
	}
	if c.Pipeline.FetchUpcomingOdds.Enabled && c.Pipeline.FetchUpcomingOdds.DaysForward < 1 {
		c.Pipeline.FetchUpcomingOdds.DaysForward = 2
	}
	return nil
}

// WorksheetTitle resolves a worksheet config key ("scores", "batting",
// ...) to its tab title.
func (c *Config) WorksheetTitle(key string) string {
	if title, ok := c.Sheets.Worksheets[key]; ok {
		return title
	}
	return defaultWorksheets[key]
}
