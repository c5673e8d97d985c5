package game

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// Record is one game row scraped from a daily schedule section: the
// matchup, the final score, and an optional link to the box score page.
// Scores are pointers because future or unparsed games carry no score.
type Record struct {
	ID          string `json:"id"`
	Date        string `json:"date"` // YYYY-MM-DD
	AwayTeam    string `json:"away_team"`
	AwayScore   *int   `json:"away_score"`
	HomeTeam    string `json:"home_team"`
	HomeScore   *int   `json:"home_score"`
	BoxScoreURL string `json:"box_score_url,omitempty"`
}

// GenerateID creates a deterministic ID for a game from its stable key
// fields. The same matchup on the same date always yields the same ID.
func GenerateID(date, awayTeam, homeTeam string) string {
	h := sha1.New()
	h.Write([]byte(date + "|" + awayTeam + "|" + homeTeam))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NewRecord creates a Record with its ID populated.
func NewRecord(date, awayTeam string, awayScore *int, homeTeam string, homeScore *int, boxScoreURL string) *Record {
	return &Record{
		ID:          GenerateID(date, awayTeam, homeTeam),
		Date:        date,
		AwayTeam:    awayTeam,
		AwayScore:   awayScore,
		HomeTeam:    homeTeam,
		HomeScore:   homeScore,
		BoxScoreURL: boxScoreURL,
	}
}

// HasBoxScore reports whether a box score page is linked for this game.
func (r *Record) HasBoxScore() bool {
	return r.BoxScoreURL != ""
}

// BattingLine is one player's batting row from a box score table.
type BattingLine struct {
	Team     string  `json:"team"`
	GameDate string  `json:"game_date"`
	GameURL  string  `json:"game_url"`
	Player   string  `json:"player"`
	PlayerID string  `json:"player_id,omitempty"`
	AB       int     `json:"ab"`
	R        int     `json:"r"`
	H        int     `json:"h"`
	RBI      int     `json:"rbi"`
	BB       int     `json:"bb"`
	SO       int     `json:"so"`
	PA       int     `json:"pa"`
	HR       int     `json:"hr"`
	AVG      float64 `json:"avg"`
	OBP      float64 `json:"obp"`
	SLG      float64 `json:"slg"`
	OPS      float64 `json:"ops"`
}

// PitchingLine is one pitcher's row from a box score table. IP keeps the
// baseball notation ("6.2" means six and two-thirds innings); use
// InningsPitched for arithmetic.
type PitchingLine struct {
	Team     string  `json:"team"`
	GameDate string  `json:"game_date"`
	GameURL  string  `json:"game_url"`
	Player   string  `json:"player"`
	PlayerID string  `json:"player_id,omitempty"`
	IP       string  `json:"ip"`
	H        int     `json:"h"`
	R        int     `json:"r"`
	ER       int     `json:"er"`
	BB       int     `json:"bb"`
	SO       int     `json:"so"`
	HR       int     `json:"hr"`
	ERA      float64 `json:"era"`
}

// InningsPitched converts the dotted IP notation into a decimal number
// of innings: the fractional digit counts outs, so ".1" is one third and
// ".2" is two thirds. Returns 0 for unparseable values.
func (p *PitchingLine) InningsPitched() float64 {
	s := strings.TrimSpace(p.IP)
	if s == "" {
		return 0
	}
	whole := s
	outs := 0
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole = s[:i]
		switch s[i+1:] {
		case "1":
			outs = 1
		case "2":
			outs = 2
		case "0", "":
		default:
			return 0
		}
	}
	var n int
	if _, err := fmt.Sscanf(whole, "%d", &n); err != nil {
		return 0
	}
	return float64(n) + float64(outs)/3.0
}

// LineupEntry is one slot of a team's starting lineup. BattingOrder is 0
// for entries without a slot (a starting pitcher in a DH game).
type LineupEntry struct {
	Team         string `json:"team"`
	GameDate     string `json:"game_date"`
	BattingOrder int    `json:"batting_order"`
	Player       string `json:"player"`
	Position     string `json:"position"`
}

// Info holds game-level metadata scraped from the box score page header:
// venue, attendance, weather, officials, and pitcher decisions. One row
// per game.
type Info struct {
	GameDate       string   `json:"game_date"`
	HomeTeam       string   `json:"home_team"`
	AwayTeam       string   `json:"away_team"`
	HomeScore      *int     `json:"home_score"`
	AwayScore      *int     `json:"away_score"`
	Winner         string   `json:"winner,omitempty"`
	Loser          string   `json:"loser,omitempty"`
	Venue          string   `json:"venue,omitempty"`
	StartTime      string   `json:"start_time,omitempty"`
	Duration       string   `json:"duration,omitempty"`
	Attendance     string   `json:"attendance,omitempty"`
	FieldCondition string   `json:"field_condition,omitempty"`
	Weather        string   `json:"weather,omitempty"`
	Umpires        []string `json:"umpires,omitempty"`
	WinningPitcher string   `json:"winning_pitcher,omitempty"`
	LosingPitcher  string   `json:"losing_pitcher,omitempty"`
	SavePitcher    string   `json:"save_pitcher,omitempty"`
}

// Decide fills Winner and Loser from the scores. Tied games (possible in
// exhibitions) record "Tie" for both.
func (i *Info) Decide() {
	if i.HomeScore == nil || i.AwayScore == nil {
		return
	}
	switch {
	case *i.HomeScore > *i.AwayScore:
		i.Winner, i.Loser = i.HomeTeam, i.AwayTeam
	case *i.AwayScore > *i.HomeScore:
		i.Winner, i.Loser = i.AwayTeam, i.HomeTeam
	default:
		i.Winner, i.Loser = "Tie", "Tie"
	}
}

// Market identifiers for odds rows.
const (
	MarketMoneyline = "moneyline"
	MarketSpread    = "spread"
	MarketTotal     = "total"
)

// OddsLine is one normalized betting quote: a single bookmaker's price
// for a single market side of a single game. Zero or more per game.
type OddsLine struct {
	GameDate     string   `json:"game_date"`
	HomeTeam     string   `json:"home_team"`
	AwayTeam     string   `json:"away_team"`
	Bookmaker    string   `json:"bookmaker"`
	Market       string   `json:"market"`
	Side         string   `json:"side"` // home/away for team markets, over/under for totals
	Point        *float64 `json:"point,omitempty"`
	Price        float64  `json:"price"`
	CommenceTime string   `json:"commence_time"`
	EventID      string   `json:"event_id"`
}

// InsightNote is a free-text summary for one game. Source records which
// generator produced it ("llm" or "local").
type InsightNote struct {
	GameDate string `json:"game_date"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Source   string `json:"source"`
	Notes    string `json:"notes"`
}
