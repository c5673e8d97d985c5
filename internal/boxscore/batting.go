package boxscore

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
)

var battingIDPattern = regexp.MustCompile(`(?i)batting$`)

// parseBatting extracts one BattingLine per player row from every
// batting table on the page, one table per team.
func parseBatting(doc *goquery.Document, date, gameURL string) []game.BattingLine {
	lines := make([]game.BattingLine, 0)
	tables := 0

	doc.Find("table[id]").Each(func(i int, table *goquery.Selection) {
		id, _ := table.Attr("id")
		if !battingIDPattern.MatchString(id) {
			return
		}
		tables++
		team := teamFromTableID(id, "batting")

		table.Find("tbody tr").Each(func(j int, row *goquery.Selection) {
			if skipRow(row) {
				return
			}
			player, playerID := playerCell(row)

			lines = append(lines, game.BattingLine{
				Team:     team,
				GameDate: date,
				GameURL:  gameURL,
				Player:   player,
				PlayerID: playerID,
				AB:       cellInt(row, "AB", "ab"),
				R:        cellInt(row, "R", "r"),
				H:        cellInt(row, "H", "h"),
				RBI:      cellInt(row, "RBI", "rbi"),
				BB:       cellInt(row, "BB", "bb"),
				SO:       cellInt(row, "SO", "so"),
				PA:       cellInt(row, "PA", "pa"),
				HR:       cellInt(row, "HR", "hr"),
				AVG:      cellFloat(row, "batting_avg", "AVG"),
				OBP:      cellFloat(row, "onbase_perc", "OBP"),
				SLG:      cellFloat(row, "slugging_perc", "SLG"),
				OPS:      cellFloat(row, "onbase_plus_slugging", "OPS"),
			})
		})
	})

	if tables == 0 {
		logger.Warn("No batting tables found", logger.Fields{"url": gameURL})
	}
	return lines
}
