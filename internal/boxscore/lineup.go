package boxscore

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
)

var positionPattern = regexp.MustCompile(`\(([A-Z0-9]{1,3})\)`)

// parseLineups extracts the starting lineups from the div_lineups
// section, one table per team. Table captions name the team; tables
// without a caption fall back to position, away team first.
func parseLineups(doc *goquery.Document, date, awayTeam, homeTeam string) []game.LineupEntry {
	section := doc.Find("div#div_lineups").First()
	if section.Length() == 0 {
		section = doc.Find("div#div_starting_lineups").First()
	}
	if section.Length() == 0 {
		logger.Warn("No starting lineups section found", logger.Fields{"date": date})
		return nil
	}

	entries := make([]game.LineupEntry, 0, 18)

	section.Find("table").Each(func(i int, table *goquery.Selection) {
		team := strings.TrimSpace(table.Find("caption").First().Text())
		if team == "" || strings.EqualFold(team, "table") {
			switch i {
			case 0:
				team = awayTeam
			case 1:
				team = homeTeam
			}
		}
		if team == "" {
			team = "UNKNOWN"
		}

		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			if row.Find("th").Length() > 0 {
				return
			}
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}

			order := parseBattingOrder(cells.Eq(0).Text())
			player := strings.TrimSpace(cells.Eq(1).Find("a").First().Text())
			if player == "" {
				player = strings.TrimSpace(cells.Eq(1).Text())
			}
			if player == "" || strings.EqualFold(player, "player") {
				return
			}

			entries = append(entries, game.LineupEntry{
				Team:         team,
				GameDate:     date,
				BattingOrder: order,
				Player:       player,
				Position:     parsePosition(row, cells),
			})
		})
	})

	return entries
}

// parseBattingOrder reads a "1." style order cell. Slots outside 1..9
// (a non-batting starting pitcher) are reported as 0.
func parseBattingOrder(text string) int {
	text = strings.TrimSuffix(strings.TrimSpace(text), ".")
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > 9 {
		return 0
	}
	return n
}

// parsePosition finds the fielding position for a lineup row: a third
// cell holding a bare position code, or a "(SS)" style suffix anywhere
// in the row text.
func parsePosition(row *goquery.Selection, cells *goquery.Selection) string {
	if cells.Length() >= 3 {
		pos := strings.TrimSpace(cells.Eq(2).Text())
		if pos != "" && len(pos) <= 3 && pos == strings.ToUpper(pos) {
			return pos
		}
	}
	if m := positionPattern.FindStringSubmatch(row.Text()); m != nil {
		return m[1]
	}
	return "N/A"
}
