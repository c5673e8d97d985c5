package boxscore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// cellText returns the trimmed text of the first td in row whose
// data-stat attribute matches any of the given names. Empty cells and
// the site's "--" placeholder come back as "".
func cellText(row *goquery.Selection, stats ...string) string {
	for _, stat := range stats {
		cell := row.Find(fmt.Sprintf("td[data-stat=%q]", stat))
		if cell.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(cell.First().Text())
		if text == "--" {
			return ""
		}
		return text
	}
	return ""
}

// cellInt parses an integer stat cell, returning 0 for blank or
// malformed values.
func cellInt(row *goquery.Selection, stats ...string) int {
	n, err := strconv.Atoi(cellText(row, stats...))
	if err != nil {
		return 0
	}
	return n
}

// cellFloat parses a rate stat cell (".333" style values included),
// returning 0 for blank or malformed values.
func cellFloat(row *goquery.Selection, stats ...string) float64 {
	f, err := strconv.ParseFloat(cellText(row, stats...), 64)
	if err != nil {
		return 0
	}
	return f
}

// playerCell extracts the player name and Baseball-Reference player ID
// from a row's th[data-stat=player] cell. The ID is the final path
// element of the player link without its .shtml suffix.
func playerCell(row *goquery.Selection) (name, id string) {
	th := row.Find("th[data-stat=player]").First()
	if th.Length() == 0 {
		return "", ""
	}
	name = strings.TrimSpace(th.Text())

	// Pitcher rows append the decision to the cell text, as in
	// "Max Fried, W (10-2)". The link text carries the bare name.
	link := th.Find("a").First()
	if link.Length() > 0 {
		if text := strings.TrimSpace(link.Text()); text != "" {
			name = text
		}
		if href, ok := link.Attr("href"); ok {
			parts := strings.Split(href, "/")
			id = strings.TrimSuffix(parts[len(parts)-1], ".shtml")
		}
	}
	return name, id
}

// skipRow reports whether a stat table row is structural rather than a
// player line: totals, spacers, and repeated in-body header rows.
func skipRow(row *goquery.Selection) bool {
	if row.HasClass("total_row") || row.HasClass("spacer") || row.HasClass("thead") {
		return true
	}
	name, _ := playerCell(row)
	switch name {
	case "", "Team Totals", "Team Total", "Totals", "Total":
		return true
	}
	return false
}
