package odds

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/config"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
)

func testConfig(baseURL string) config.OddsAPI {
	return config.OddsAPI{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		Regions:    "us",
		Markets:    "h2h,spreads,totals",
		OddsFormat: "decimal",
		DateFormat: "iso",
	}
}

func oddsServer(t *testing.T) *httptest.Server {
	t.Helper()
	fixture, err := os.ReadFile("testdata/fixtures/odds_response.json")
	if err != nil {
		t.Fatalf("Failed to read odds fixture: %v", err)
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v4/sports/baseball_mlb/odds" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("apiKey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		for param, want := range map[string]string{
			"regions":    "us",
			"markets":    "h2h,spreads,totals",
			"oddsFormat": "decimal",
			"dateFormat": "iso",
		} {
			if q.Get(param) != want {
				t.Errorf("Query param %s = %s, want %s", param, q.Get(param), want)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(fixture)
	}))
}

func TestFetchForDate(t *testing.T) {
	server := oddsServer(t)
	defer server.Close()

	c := New(testConfig(server.URL))
	lines, err := c.FetchForDate("2025-07-12")
	if err != nil {
		t.Fatalf("FetchForDate returned error: %v", err)
	}

	// DraftKings quotes all three markets both ways, FanDuel quotes
	// moneyline only. The Astros game commences on the 13th UTC and
	// must be filtered out.
	if len(lines) != 8 {
		t.Fatalf("Expected 8 odds lines, got %d", len(lines))
	}

	for _, l := range lines {
		if l.HomeTeam != "Chicago Cubs" || l.AwayTeam != "Milwaukee Brewers" {
			t.Errorf("Unexpected matchup %s @ %s in filtered lines", l.AwayTeam, l.HomeTeam)
		}
		if l.GameDate != "2025-07-12" {
			t.Errorf("GameDate = %s, want 2025-07-12", l.GameDate)
		}
		if l.EventID != "e912304de2b2ce35b473ce2ecd3d1502" {
			t.Errorf("EventID = %s", l.EventID)
		}
	}
}

func TestFetchForDateNormalizesMarkets(t *testing.T) {
	server := oddsServer(t)
	defer server.Close()

	c := New(testConfig(server.URL))
	lines, err := c.FetchForDate("2025-07-12")
	if err != nil {
		t.Fatalf("FetchForDate returned error: %v", err)
	}

	byKey := make(map[string]game.OddsLine)
	for _, l := range lines {
		byKey[l.Bookmaker+"/"+l.Market+"/"+l.Side] = l
	}

	ml := byKey["draftkings/moneyline/home"]
	if ml.Price != 2.1 || ml.Point != nil {
		t.Errorf("Moneyline home = price %v point %v, want 2.1 and nil", ml.Price, ml.Point)
	}

	spread := byKey["draftkings/spread/away"]
	if spread.Price != 2.35 || spread.Point == nil || *spread.Point != -1.5 {
		t.Errorf("Spread away = price %v point %v, want 2.35 and -1.5", spread.Price, spread.Point)
	}

	total := byKey["draftkings/total/over"]
	if total.Price != 1.91 || total.Point == nil || *total.Point != 8.5 {
		t.Errorf("Total over = price %v point %v, want 1.91 and 8.5", total.Price, total.Point)
	}

	if _, ok := byKey["fanduel/moneyline/away"]; !ok {
		t.Error("Missing FanDuel away moneyline line")
	}
	if _, ok := byKey["fanduel/spread/home"]; ok {
		t.Error("FanDuel quotes no spreads; none should appear")
	}
}

func TestFetchForDateNoGames(t *testing.T) {
	server := oddsServer(t)
	defer server.Close()

	c := New(testConfig(server.URL))
	lines, err := c.FetchForDate("2025-09-01")
	if err != nil {
		t.Fatalf("FetchForDate returned error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Expected 0 lines for a date with no games, got %d", len(lines))
	}
}

func TestFetchForDateInvalidDate(t *testing.T) {
	c := New(testConfig("http://localhost:0"))
	if _, err := c.FetchForDate("07/12/2025"); err == nil {
		t.Fatal("Expected error for malformed date, got nil")
	}
}

func TestFetchForDateWithoutKey(t *testing.T) {
	c := New(config.OddsAPI{BaseURL: "http://localhost:0"})
	if c.Enabled() {
		t.Error("Client without API key should not report enabled")
	}
	if _, err := c.FetchForDate("2025-07-12"); err == nil {
		t.Fatal("Expected error when API key is missing, got nil")
	}
}

func TestFetchForDateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(testConfig(server.URL))
	if _, err := c.FetchForDate("2025-07-12"); err == nil {
		t.Fatal("Expected error for 401 response, got nil")
	}
}

func TestForMatchup(t *testing.T) {
	lines := []game.OddsLine{
		{HomeTeam: "Chicago Cubs", AwayTeam: "Milwaukee Brewers", Bookmaker: "draftkings"},
		{HomeTeam: "Houston Astros", AwayTeam: "Texas Rangers", Bookmaker: "draftkings"},
		{HomeTeam: "Chicago Cubs", AwayTeam: "Milwaukee Brewers", Bookmaker: "fanduel"},
	}

	got := ForMatchup(lines, "Chicago Cubs", "Milwaukee Brewers")
	if len(got) != 2 {
		t.Fatalf("Expected 2 matching lines, got %d", len(got))
	}
	for _, l := range got {
		if l.HomeTeam != "Chicago Cubs" {
			t.Errorf("Wrong matchup in result: %+v", l)
		}
	}
}
