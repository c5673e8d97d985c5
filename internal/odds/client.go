package odds

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/config"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
)

const (
	oddsPath       = "/v4/sports/baseball_mlb/odds"
	requestTimeout = 20 * time.Second
)

// Client is a key-authenticated The Odds API client.
type Client struct {
	client    *http.Client
	cfg       config.OddsAPI
	teamNames map[string]string
}

// New creates an odds Client from its config section. An empty
// TeamNameMap falls back to the built-in MLB map.
func New(cfg config.OddsAPI) *Client {
	names := cfg.TeamNameMap
	if len(names) == 0 {
		names = game.DefaultTeamNameMap()
	}
	return &Client{
		client:    &http.Client{Timeout: requestTimeout},
		cfg:       cfg,
		teamNames: names,
	}
}

// Enabled reports whether the client has an API key to work with.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

// event mirrors one game object in the API response.
type event struct {
	ID           string      `json:"id"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []bookmaker `json:"bookmakers"`
}

type bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []market `json:"markets"`
}

type market struct {
	Key      string    `json:"key"`
	Outcomes []outcome `json:"outcomes"`
}

type outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// FetchForDate queries the odds endpoint and returns normalized lines
// for every game whose commence time falls on date (UTC), in
// YYYY-MM-DD form. The API returns all upcoming games; filtering
// happens client side.
func (c *Client) FetchForDate(date string) ([]game.OddsLine, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("odds API key is not configured")
	}
	if _, err := time.Parse(game.DateFormat, date); err != nil {
		return nil, fmt.Errorf("invalid odds target date %q: %w", date, err)
	}

	events, err := c.fetchEvents()
	if err != nil {
		return nil, err
	}

	lines := make([]game.OddsLine, 0)
	matched := 0
	for _, ev := range events {
		evDate, err := commenceDate(ev.CommenceTime)
		if err != nil {
			logger.Warn("Unparseable commence_time in odds response", logger.Fields{
				"event_id":      ev.ID,
				"commence_time": ev.CommenceTime,
			})
			continue
		}
		if evDate != date {
			continue
		}
		matched++
		lines = append(lines, c.normalizeEvent(ev, date)...)
	}

	logger.Info("Fetched odds", logger.Fields{
		"date":   date,
		"events": matched,
		"lines":  len(lines),
	})
	return lines, nil
}

// fetchEvents performs the GET and decodes the event list.
func (c *Client) fetchEvents() ([]event, error) {
	u, err := url.Parse(c.cfg.BaseURL + oddsPath)
	if err != nil {
		return nil, fmt.Errorf("building odds URL: %w", err)
	}
	q := u.Query()
	q.Set("apiKey", c.cfg.APIKey)
	q.Set("regions", c.cfg.Regions)
	q.Set("markets", c.cfg.Markets)
	q.Set("oddsFormat", c.cfg.OddsFormat)
	q.Set("dateFormat", c.cfg.DateFormat)
	u.RawQuery = q.Encode()

	start := time.Now()
	resp, err := c.client.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("fetching odds: %w", err)
	}
	defer resp.Body.Close()
	logger.RecordTiming("fetch.odds", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds API returned status %d", resp.StatusCode)
	}

	var events []event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decoding odds response: %w", err)
	}
	return events, nil
}

// commenceDate reduces an ISO commence_time to its UTC calendar date.
func commenceDate(commenceTime string) (string, error) {
	t, err := time.Parse(time.RFC3339, commenceTime)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(game.DateFormat), nil
}
