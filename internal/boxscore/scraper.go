package boxscore

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
)

const fetchTimeout = 30 * time.Second

// BoxScore bundles everything parsed from one box score page.
type BoxScore struct {
	GameURL  string
	Batting  []game.BattingLine
	Pitching []game.PitchingLine
	Lineups  []game.LineupEntry
	Info     game.Info
}

// Scraper downloads and parses box score pages.
type Scraper struct {
	client    *http.Client
	userAgent string
}

// New creates a box score Scraper.
func New(userAgent string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: fetchTimeout,
		},
		userAgent: userAgent,
	}
}

// Fetch downloads the box score page at gameURL and parses all detail
// tables. A fetch or document error is returned; a section that fails
// to parse just yields an empty slice, logged by the section parser.
func (s *Scraper) Fetch(gameURL string) (*BoxScore, error) {
	req, err := http.NewRequest("GET", gameURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching box score: %w", err)
	}
	defer resp.Body.Close()
	logger.RecordTiming("fetch.boxscore", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("box score page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading box score body: %w", err)
	}

	return s.parse(string(body), gameURL)
}

// Stat tables are wrapped in HTML comments on the live site. Deleting
// the markers exposes them to normal selector traversal.
var commentStripper = strings.NewReplacer("<!--", "", "-->", "")

// parse builds a BoxScore from raw page HTML.
func (s *Scraper) parse(html, gameURL string) (*BoxScore, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(commentStripper.Replace(html)))
	if err != nil {
		return nil, fmt.Errorf("parsing box score HTML: %w", err)
	}

	box := &BoxScore{GameURL: gameURL}
	box.Info = parseGameInfo(doc)
	date := box.Info.GameDate

	box.Batting = parseBatting(doc, date, gameURL)
	box.Pitching = parsePitching(doc, date, gameURL)
	box.Lineups = parseLineups(doc, date, box.Info.AwayTeam, box.Info.HomeTeam)

	logger.Info("Parsed box score", logger.Fields{
		"url":      gameURL,
		"batting":  len(box.Batting),
		"pitching": len(box.Pitching),
		"lineups":  len(box.Lineups),
	})

	return box, nil
}
