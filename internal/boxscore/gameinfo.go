package boxscore

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
)

var (
	longDatePattern = regexp.MustCompile(`[A-Za-z]+, [A-Za-z]+ \d{1,2}, \d{4}`)

	wpPattern = regexp.MustCompile(`WP:\s*([^(*]+?)\s*\(`)
	lpPattern = regexp.MustCompile(`LP:\s*([^(*]+?)\s*\(`)
	svPattern = regexp.MustCompile(`SV:\s*([^(*]+?)\s*\(`)
)

// parseGameInfo reads the scorebox header and the scorebox_meta block:
// teams and final score, game date, venue details, and the WP/LP/SV
// pitcher decisions.
func parseGameInfo(doc *goquery.Document) game.Info {
	info := game.Info{}

	parseScorebox(doc, &info)
	parseScoreboxMeta(doc, &info)
	parseDecisions(doc, &info)
	info.Decide()

	return info
}

// parseScorebox reads the team names and final scores from the page
// header. The away team is listed first.
func parseScorebox(doc *goquery.Document, info *game.Info) {
	names := doc.Find("div.scorebox strong a")
	if names.Length() >= 2 {
		info.AwayTeam = strings.TrimSpace(names.Eq(0).Text())
		info.HomeTeam = strings.TrimSpace(names.Eq(1).Text())
	}

	scores := doc.Find("div.scorebox div.score")
	if scores.Length() >= 2 {
		if n, err := strconv.Atoi(strings.TrimSpace(scores.Eq(0).Text())); err == nil {
			info.AwayScore = &n
		}
		if n, err := strconv.Atoi(strings.TrimSpace(scores.Eq(1).Text())); err == nil {
			info.HomeScore = &n
		}
	}
}

// parseScoreboxMeta walks the labelled paragraphs under scorebox_meta.
// The first paragraph carries the long-form game date.
func parseScoreboxMeta(doc *goquery.Document, info *game.Info) {
	meta := doc.Find("div.scorebox_meta").First()
	if meta.Length() == 0 {
		logger.Warn("No scorebox_meta block found", nil)
		return
	}

	meta.Find("p").Each(func(i int, p *goquery.Selection) {
		text := strings.Join(strings.Fields(p.Text()), " ")

		if info.GameDate == "" {
			if m := longDatePattern.FindString(text); m != "" {
				if d := game.ParseLongDate(m); d != "" {
					info.GameDate = d
					return
				}
			}
		}

		switch {
		case strings.Contains(text, "Start Time:"):
			info.StartTime = labelValue(text, "Start Time:")
		case strings.Contains(text, "Time of Game:"):
			info.Duration = labelValue(text, "Time of Game:")
		case strings.Contains(text, "Attendance:"):
			info.Attendance = strings.ReplaceAll(labelValue(text, "Attendance:"), ",", "")
		case strings.Contains(text, "Venue:"):
			info.Venue = labelValue(text, "Venue:")
		case strings.Contains(text, "Field Condition:"):
			info.FieldCondition = labelValue(text, "Field Condition:")
		case strings.Contains(text, "Weather:"):
			info.Weather = labelValue(text, "Weather:")
		case strings.Contains(text, "Umpires:"):
			for _, u := range strings.Split(labelValue(text, "Umpires:"), ",") {
				if u = strings.TrimSpace(u); u != "" {
					info.Umpires = append(info.Umpires, u)
				}
			}
		}
	})
}

// labelValue strips a "Label:" prefix wherever it sits in the text and
// returns the trimmed remainder.
func labelValue(text, label string) string {
	_, after, found := strings.Cut(text, label)
	if !found {
		return ""
	}
	return strings.TrimSuffix(strings.TrimSpace(after), ".")
}

// parseDecisions reads the WP/LP/SV line from the paragraph that
// follows the linescore table.
func parseDecisions(doc *goquery.Document, info *game.Info) {
	p := doc.Find("table#linescore").First().NextAllFiltered("p").First()
	text := strings.TrimSpace(p.Text())

	if !strings.Contains(text, "WP:") && !strings.Contains(text, "LP:") && !strings.Contains(text, "SV:") {
		// The paragraph occasionally moves around between page
		// layouts; scan the whole document as a fallback.
		doc.Find("p").EachWithBreak(func(i int, sel *goquery.Selection) bool {
			t := strings.TrimSpace(sel.Text())
			if strings.Contains(t, "WP:") || strings.Contains(t, "LP:") {
				text = t
				return false
			}
			return true
		})
	}
	if text == "" {
		logger.Warn("No pitcher decisions paragraph found", nil)
		return
	}

	if m := wpPattern.FindStringSubmatch(text); m != nil {
		info.WinningPitcher = strings.TrimSpace(m[1])
	}
	if m := lpPattern.FindStringSubmatch(text); m != nil {
		info.LosingPitcher = strings.TrimSpace(m[1])
	}
	if m := svPattern.FindStringSubmatch(text); m != nil {
		info.SavePitcher = strings.TrimSpace(m[1])
	}
}
