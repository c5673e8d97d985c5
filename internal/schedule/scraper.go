package schedule

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
)

const fetchTimeout = 30 * time.Second

// Scraper fetches and parses the yearly MLB schedule page.
type Scraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// New creates a schedule Scraper for the given site base URL.
func New(baseURL, userAgent string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: fetchTimeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// ScheduleURL returns the yearly schedule page URL for a season.
func (s *Scraper) ScheduleURL(year int) string {
	return fmt.Sprintf("%s/leagues/MLB/%d-schedule.shtml", s.baseURL, year)
}

// Matchup text: "Milwaukee Brewers (6) @ Chicago Cubs (3)".
var matchupPattern = regexp.MustCompile(`^(.+?)\s+\((\d+)\)\s+@\s+(.+?)\s+\((\d+)\)`)

// Fallback for rows without final scores: "Milwaukee Brewers @ Chicago Cubs".
var matchupNoScorePattern = regexp.MustCompile(`^(.+?)\s+@\s+([^(]+?)(?:\s*\(|$)`)

// Box score links look like /boxes/CHN/CHN202507120.shtml.
var boxLinkPattern = regexp.MustCompile(`/boxes/[A-Z]{3}/\d{8}0\.shtml`)

// RecentGames fetches the schedule page for year and returns one Record
// per game found under the headings for the given dates. A date whose
// heading is absent contributes no rows; only the page fetch itself is a
// hard error.
func (s *Scraper) RecentGames(year int, dates []time.Time) ([]*game.Record, error) {
	url := s.ScheduleURL(year)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule page: %w", err)
	}
	defer resp.Body.Close()
	logger.RecordTiming("fetch.schedule", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule page returned status %d", resp.StatusCode)
	}

	return s.parseGames(resp.Body, dates)
}

// parseGames extracts rows for each target date from the schedule HTML.
func (s *Scraper) parseGames(r io.Reader, dates []time.Time) ([]*game.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule HTML: %w", err)
	}

	games := make([]*game.Record, 0)
	for _, date := range dates {
		heading := game.ScheduleHeading(date)
		rowDate := date.Format(game.DateFormat)

		section := findDaySection(doc, heading)
		if section == nil {
			logger.Warn("No schedule heading for date", logger.Fields{
				"date":    rowDate,
				"heading": heading,
			})
			continue
		}

		dayGames := s.parseDaySection(section, rowDate)
		logger.Info("Collected schedule rows", logger.Fields{
			"date":  rowDate,
			"games": len(dayGames),
		})
		games = append(games, dayGames...)
	}

	return games, nil
}

// findDaySection locates the container div whose h3 heading text matches
// the target date heading.
func findDaySection(doc *goquery.Document, heading string) *goquery.Selection {
	var section *goquery.Selection
	doc.Find("h3").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) == heading {
			section = sel.Parent()
			return false
		}
		return true
	})
	return section
}

// parseDaySection extracts one Record per p.game paragraph in a day's
// container.
func (s *Scraper) parseDaySection(section *goquery.Selection, date string) []*game.Record {
	games := make([]*game.Record, 0)

	section.Find("p.game").Each(func(i int, p *goquery.Selection) {
		boxURL := ""
		p.Find("a").EachWithBreak(func(j int, a *goquery.Selection) bool {
			href, ok := a.Attr("href")
			if ok && boxLinkPattern.MatchString(href) {
				boxURL = s.baseURL + href
				return false
			}
			return true
		})

		// The matchup text is interleaved with "Boxscore"/"Preview"
		// links; drop those anchors before reading the text so the
		// regexes see only teams and scores.
		clean := p.Clone()
		clean.Find("a").Each(func(j int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if strings.Contains(href, "/boxes/") || strings.Contains(href, "/previews/") {
				a.Remove()
			}
		})
		text := strings.TrimSpace(strings.ReplaceAll(clean.Text(), "\n", " "))
		text = strings.Join(strings.Fields(text), " ")

		if matches := matchupPattern.FindStringSubmatch(text); matches != nil {
			awayScore, _ := strconv.Atoi(matches[2])
			homeScore, _ := strconv.Atoi(matches[4])
			rec := game.NewRecord(date,
				strings.TrimSpace(matches[1]), &awayScore,
				strings.TrimSpace(matches[3]), &homeScore,
				boxURL)
			games = append(games, rec)
			return
		}

		// No final score in the text. Keep the row only when a box score
		// link proves the paragraph is a real game.
		if boxURL == "" {
			logger.Debug("Skipping unparseable schedule row", logger.Fields{
				"date": date,
				"text": text,
			})
			return
		}
		if matches := matchupNoScorePattern.FindStringSubmatch(text); matches != nil {
			rec := game.NewRecord(date,
				strings.TrimSpace(matches[1]), nil,
				strings.TrimSpace(matches[2]), nil,
				boxURL)
			games = append(games, rec)
			return
		}
		logger.Warn("Could not parse matchup for linked game", logger.Fields{
			"date": date,
			"text": text,
		})
	})

	return games
}
