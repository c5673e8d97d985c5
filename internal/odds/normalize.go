package odds

import (
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
)

// normalizeEvent flattens one API event into long-form OddsLine rows:
// one row per bookmaker, market, and side. Outcome names are matched
// against the event's own team names before standardization so the
// match is exact.
func (c *Client) normalizeEvent(ev event, date string) []game.OddsLine {
	home := game.StandardTeamName(ev.HomeTeam, c.teamNames)
	away := game.StandardTeamName(ev.AwayTeam, c.teamNames)

	lines := make([]game.OddsLine, 0)
	base := game.OddsLine{
		GameDate:     date,
		HomeTeam:     home,
		AwayTeam:     away,
		CommenceTime: ev.CommenceTime,
		EventID:      ev.ID,
	}

	for _, bm := range ev.Bookmakers {
		if bm.Key == "" {
			continue
		}
		for _, mk := range bm.Markets {
			for _, out := range mk.Outcomes {
				line := base
				line.Bookmaker = bm.Key
				line.Price = out.Price
				line.Point = out.Point

				switch mk.Key {
				case "h2h":
					line.Market = game.MarketMoneyline
					line.Side = teamSide(out.Name, ev)
				case "spreads":
					line.Market = game.MarketSpread
					line.Side = teamSide(out.Name, ev)
				case "totals":
					line.Market = game.MarketTotal
					switch out.Name {
					case "Over":
						line.Side = "over"
					case "Under":
						line.Side = "under"
					}
				default:
					continue
				}

				if line.Side == "" {
					continue
				}
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// teamSide maps an outcome's team name to "home" or "away" within its
// event. Unknown names yield "".
func teamSide(name string, ev event) string {
	switch name {
	case ev.HomeTeam:
		return "home"
	case ev.AwayTeam:
		return "away"
	}
	return ""
}

// ForMatchup filters lines down to those quoting the given matchup,
// with team names already standardized on both sides.
func ForMatchup(lines []game.OddsLine, homeTeam, awayTeam string) []game.OddsLine {
	out := make([]game.OddsLine, 0)
	for _, l := range lines {
		if l.HomeTeam == homeTeam && l.AwayTeam == awayTeam {
			out = append(out, l)
		}
	}
	return out
}
