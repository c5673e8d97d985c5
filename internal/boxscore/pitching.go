package boxscore

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
)

var pitchingIDPattern = regexp.MustCompile(`(?i)pitching$`)

// parsePitching extracts one PitchingLine per pitcher row from every
// pitching table on the page.
func parsePitching(doc *goquery.Document, date, gameURL string) []game.PitchingLine {
	lines := make([]game.PitchingLine, 0)
	tables := 0

	doc.Find("table[id]").Each(func(i int, table *goquery.Selection) {
		id, _ := table.Attr("id")
		if !pitchingIDPattern.MatchString(id) {
			return
		}
		tables++
		team := teamFromTableID(id, "pitching")

		table.Find("tbody tr").Each(func(j int, row *goquery.Selection) {
			if skipRow(row) {
				return
			}
			player, playerID := playerCell(row)

			lines = append(lines, game.PitchingLine{
				Team:     team,
				GameDate: date,
				GameURL:  gameURL,
				Player:   player,
				PlayerID: playerID,
				IP:       cellText(row, "IP", "ip"),
				H:        cellInt(row, "H", "h"),
				R:        cellInt(row, "R", "r"),
				ER:       cellInt(row, "ER", "er"),
				BB:       cellInt(row, "BB", "bb"),
				SO:       cellInt(row, "SO", "so"),
				HR:       cellInt(row, "HR", "hr"),
				ERA:      cellFloat(row, "earned_run_avg", "ERA"),
			})
		})
	})

	if tables == 0 {
		logger.Warn("No pitching tables found", logger.Fields{"url": gameURL})
	}
	return lines
}
