package boxscore

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

const testUserAgent = "mlb-scraper-test/1.0"

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}
	return string(data)
}

func parseFixture(t *testing.T, name string) *BoxScore {
	t.Helper()
	s := New(testUserAgent)
	box, err := s.parse(loadFixture(t, name), "https://example.com/boxes/CHN/CHN202507120.shtml")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	return box
}

func TestParseBattingLines(t *testing.T) {
	box := parseFixture(t, "box_score.html")

	if len(box.Batting) != 4 {
		t.Fatalf("Expected 4 batting lines, got %d", len(box.Batting))
	}

	yelich := box.Batting[0]
	if yelich.Player != "Christian Yelich" {
		t.Errorf("Player = %s, want Christian Yelich", yelich.Player)
	}
	if yelich.PlayerID != "yelicch01" {
		t.Errorf("PlayerID = %s, want yelicch01", yelich.PlayerID)
	}
	if yelich.Team != "MIL" {
		t.Errorf("Team = %s, want MIL", yelich.Team)
	}
	if yelich.AB != 4 || yelich.R != 2 || yelich.H != 3 || yelich.RBI != 2 {
		t.Errorf("Counting stats = AB%d R%d H%d RBI%d, want AB4 R2 H3 RBI2",
			yelich.AB, yelich.R, yelich.H, yelich.RBI)
	}
	if yelich.AVG != 0.287 || yelich.OPS != 0.872 {
		t.Errorf("Rate stats = AVG%.3f OPS%.3f, want AVG0.287 OPS0.872", yelich.AVG, yelich.OPS)
	}
	if yelich.GameDate != "2025-07-12" {
		t.Errorf("GameDate = %s, want 2025-07-12", yelich.GameDate)
	}

	happ := box.Batting[2]
	if happ.Team != "CHC" || happ.Player != "Ian Happ" {
		t.Errorf("Third line = %s/%s, want CHC/Ian Happ", happ.Team, happ.Player)
	}
}

func TestParseBattingSkipsTotalsAndSpacers(t *testing.T) {
	box := parseFixture(t, "box_score.html")

	for _, line := range box.Batting {
		if line.Player == "Team Totals" || line.Player == "" {
			t.Errorf("Structural row leaked into batting lines: %+v", line)
		}
	}
}

func TestParsePitchingLines(t *testing.T) {
	box := parseFixture(t, "box_score.html")

	if len(box.Pitching) != 3 {
		t.Fatalf("Expected 3 pitching lines, got %d", len(box.Pitching))
	}

	peralta := box.Pitching[0]
	if peralta.Player != "Freddy Peralta" {
		t.Errorf("Player = %q, want Freddy Peralta without the decision suffix", peralta.Player)
	}
	if peralta.Team != "MIL" {
		t.Errorf("Team = %s, want MIL", peralta.Team)
	}
	if peralta.IP != "6.2" {
		t.Errorf("IP = %s, want 6.2", peralta.IP)
	}
	if got := peralta.InningsPitched(); got < 6.66 || got > 6.67 {
		t.Errorf("InningsPitched() = %f, want 6.667", got)
	}
	if peralta.SO != 8 || peralta.ER != 3 || peralta.HR != 1 {
		t.Errorf("Stats = SO%d ER%d HR%d, want SO8 ER3 HR1", peralta.SO, peralta.ER, peralta.HR)
	}
	if peralta.ERA != 2.91 {
		t.Errorf("ERA = %f, want 2.91", peralta.ERA)
	}

	taillon := box.Pitching[2]
	if taillon.Team != "CHC" || taillon.Player != "Jameson Taillon" {
		t.Errorf("Last line = %s/%s, want CHC/Jameson Taillon", taillon.Team, taillon.Player)
	}
}

func TestParseLineups(t *testing.T) {
	box := parseFixture(t, "box_score.html")

	if len(box.Lineups) != 6 {
		t.Fatalf("Expected 6 lineup entries, got %d", len(box.Lineups))
	}

	first := box.Lineups[0]
	if first.Team != "Milwaukee Brewers" {
		t.Errorf("Team = %s, want Milwaukee Brewers", first.Team)
	}
	if first.BattingOrder != 1 || first.Player != "Jackson Chourio" || first.Position != "CF" {
		t.Errorf("First entry = %d/%s/%s, want 1/Jackson Chourio/CF",
			first.BattingOrder, first.Player, first.Position)
	}

	// Starting pitcher row has no batting slot in a DH game.
	pitcher := box.Lineups[3]
	if pitcher.Player != "Freddy Peralta" || pitcher.BattingOrder != 0 || pitcher.Position != "P" {
		t.Errorf("Pitcher entry = %d/%s/%s, want 0/Freddy Peralta/P",
			pitcher.BattingOrder, pitcher.Player, pitcher.Position)
	}

	cubs := box.Lineups[4]
	if cubs.Team != "Chicago Cubs" || cubs.Player != "Ian Happ" {
		t.Errorf("Fifth entry = %s/%s, want Chicago Cubs/Ian Happ", cubs.Team, cubs.Player)
	}
}

func TestParseGameInfo(t *testing.T) {
	box := parseFixture(t, "box_score.html")
	info := box.Info

	if info.AwayTeam != "Milwaukee Brewers" || info.HomeTeam != "Chicago Cubs" {
		t.Errorf("Teams = %s @ %s, want Milwaukee Brewers @ Chicago Cubs", info.AwayTeam, info.HomeTeam)
	}
	if info.AwayScore == nil || *info.AwayScore != 6 || info.HomeScore == nil || *info.HomeScore != 3 {
		t.Errorf("Scores = %v-%v, want 6-3", info.AwayScore, info.HomeScore)
	}
	if info.Winner != "Milwaukee Brewers" || info.Loser != "Chicago Cubs" {
		t.Errorf("Decision = %s over %s, want Milwaukee Brewers over Chicago Cubs", info.Winner, info.Loser)
	}
	if info.GameDate != "2025-07-12" {
		t.Errorf("GameDate = %s, want 2025-07-12", info.GameDate)
	}
	if info.Venue != "Wrigley Field" {
		t.Errorf("Venue = %s, want Wrigley Field", info.Venue)
	}
	if info.Attendance != "39210" {
		t.Errorf("Attendance = %s, want 39210 with the comma stripped", info.Attendance)
	}
	if info.Duration != "2:41" {
		t.Errorf("Duration = %s, want 2:41", info.Duration)
	}
	if info.StartTime != "1:20 p.m. Local" {
		t.Errorf("StartTime = %s, want 1:20 p.m. Local", info.StartTime)
	}
	if info.FieldCondition != "Dry" {
		t.Errorf("FieldCondition = %s, want Dry", info.FieldCondition)
	}
	if len(info.Umpires) != 4 || info.Umpires[0] != "HP - Pat Hoberg" {
		t.Errorf("Umpires = %v, want 4 entries starting with HP - Pat Hoberg", info.Umpires)
	}
}

func TestParsePitcherDecisions(t *testing.T) {
	box := parseFixture(t, "box_score.html")
	info := box.Info

	if info.WinningPitcher != "Freddy Peralta" {
		t.Errorf("WinningPitcher = %s, want Freddy Peralta", info.WinningPitcher)
	}
	if info.LosingPitcher != "Jameson Taillon" {
		t.Errorf("LosingPitcher = %s, want Jameson Taillon", info.LosingPitcher)
	}
	if info.SavePitcher != "Trevor Megill" {
		t.Errorf("SavePitcher = %s, want Trevor Megill", info.SavePitcher)
	}
}

func TestParseEmptyPage(t *testing.T) {
	s := New(testUserAgent)
	box, err := s.parse("<html><body></body></html>", "https://example.com/boxes/X/X0.shtml")
	if err != nil {
		t.Fatalf("Empty page should parse without error, got: %v", err)
	}
	if len(box.Batting) != 0 || len(box.Pitching) != 0 || len(box.Lineups) != 0 {
		t.Errorf("Expected empty sections, got batting=%d pitching=%d lineups=%d",
			len(box.Batting), len(box.Pitching), len(box.Lineups))
	}
}

func TestTeamFromTableID(t *testing.T) {
	tests := []struct {
		id     string
		suffix string
		want   string
	}{
		{"box-MIL-pitching", "pitching", "MIL"},
		{"box-CHC-batting", "batting", "CHC"},
		{"MilwaukeeBrewersbatting", "batting", "MIL"},
		{"ArizonaDiamondbacksbatting", "batting", "ARI"},
		{"StLouisCardinalspitching", "pitching", "STL"},
		{"mysterysquadbatting", "batting", "MYSTERYSQUAD"},
		{"", "batting", "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := teamFromTableID(tt.id, tt.suffix); got != tt.want {
			t.Errorf("teamFromTableID(%q, %q) = %s, want %s", tt.id, tt.suffix, got, tt.want)
		}
	}
}

func TestFetch(t *testing.T) {
	fixture := loadFixture(t, "box_score.html")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != testUserAgent {
			t.Errorf("User-Agent = %s, want %s", r.Header.Get("User-Agent"), testUserAgent)
		}
		w.Write([]byte(fixture))
	}))
	defer server.Close()

	s := New(testUserAgent)
	box, err := s.Fetch(server.URL + "/boxes/CHN/CHN202507120.shtml")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(box.Batting) == 0 || len(box.Pitching) == 0 {
		t.Error("Fetched box score is missing stat lines")
	}
	if box.GameURL != server.URL+"/boxes/CHN/CHN202507120.shtml" {
		t.Errorf("GameURL = %s", box.GameURL)
	}
}

func TestFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	s := New(testUserAgent)
	if _, err := s.Fetch(server.URL + "/boxes/X/X0.shtml"); err == nil {
		t.Fatal("Expected error for 404 response, got nil")
	}
}
