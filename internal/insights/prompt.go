package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
)

const systemPrompt = "You are a baseball beat writer. Given box score " +
	"facts for one MLB game, write a compact recap of 3 to 5 sentences. " +
	"Mention the final score, the pitching decisions, and the standout " +
	"performances you are given. Do not invent statistics."

// BuildPrompt renders the per-game facts the model is allowed to use.
// The format is plain labelled lines, not JSON: shorter, and models
// quote it more faithfully.
func BuildPrompt(data GameData) string {
	var b strings.Builder
	info := data.Info

	fmt.Fprintf(&b, "Game: %s at %s (%s)\n", info.AwayTeam, info.HomeTeam, info.GameDate)
	if info.AwayScore != nil && info.HomeScore != nil {
		fmt.Fprintf(&b, "Final: %s %d, %s %d\n", info.AwayTeam, *info.AwayScore, info.HomeTeam, *info.HomeScore)
	}
	if info.WinningPitcher != "" {
		fmt.Fprintf(&b, "Decisions: W %s", info.WinningPitcher)
		if info.LosingPitcher != "" {
			fmt.Fprintf(&b, ", L %s", info.LosingPitcher)
		}
		if info.SavePitcher != "" {
			fmt.Fprintf(&b, ", SV %s", info.SavePitcher)
		}
		b.WriteString("\n")
	}
	if info.Venue != "" {
		fmt.Fprintf(&b, "Venue: %s\n", info.Venue)
	}

	for _, line := range topBatters(data.Batting, 3) {
		fmt.Fprintf(&b, "Batter: %s (%s) %d-for-%d, %d RBI, %d HR\n",
			line.Player, line.Team, line.H, line.AB, line.RBI, line.HR)
	}
	for _, line := range data.Pitching {
		if line.InningsPitched() >= 4 {
			fmt.Fprintf(&b, "Pitcher: %s (%s) %s IP, %d ER, %d SO, %d BB\n",
				line.Player, line.Team, line.IP, line.ER, line.SO, line.BB)
		}
	}

	if ml := firstMoneyline(data.Odds); ml != nil {
		fmt.Fprintf(&b, "Closing moneyline (%s): home %.2f, away %.2f\n",
			ml.bookmaker, ml.home, ml.away)
	}

	return b.String()
}

// topBatters returns the n most productive batting lines, ordered by
// hits then RBI.
func topBatters(lines []game.BattingLine, n int) []game.BattingLine {
	sorted := make([]game.BattingLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].H != sorted[j].H {
			return sorted[i].H > sorted[j].H
		}
		return sorted[i].RBI > sorted[j].RBI
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

type moneyline struct {
	bookmaker  string
	home, away float64
}

// firstMoneyline extracts one bookmaker's complete moneyline quote, if
// any bookmaker quoted both sides.
func firstMoneyline(lines []game.OddsLine) *moneyline {
	byBook := make(map[string]*moneyline)
	for _, l := range lines {
		if l.Market != game.MarketMoneyline {
			continue
		}
		ml, ok := byBook[l.Bookmaker]
		if !ok {
			ml = &moneyline{bookmaker: l.Bookmaker}
			byBook[l.Bookmaker] = ml
		}
		switch l.Side {
		case "home":
			ml.home = l.Price
		case "away":
			ml.away = l.Price
		}
		if ml.home != 0 && ml.away != 0 {
			return ml
		}
	}
	return nil
}
