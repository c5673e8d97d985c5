package insights

import (
	"fmt"
	"strings"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
)

// Local derives a note from the stat lines with fixed thresholds. It
// needs no network and never fails.
type Local struct{}

// NewLocal creates the heuristic generator.
func NewLocal() *Local {
	return &Local{}
}

// Generate assembles summary, highlight, and anomaly sentences from the
// game's stat lines.
func (l *Local) Generate(data GameData) (game.InsightNote, error) {
	parts := make([]string, 0, 8)
	parts = append(parts, l.summary(data.Info)...)
	parts = append(parts, l.battingHighlights(data.Batting)...)
	parts = append(parts, l.pitchingHighlights(data.Pitching)...)
	parts = append(parts, l.anomalies(data.Batting, data.Pitching)...)

	text := strings.Join(parts, " ")
	if text == "" {
		text = "No notable statistics available for this game."
	}
	return note(data, "local", text), nil
}

// summary describes the result and how lopsided it was.
func (l *Local) summary(info game.Info) []string {
	if info.HomeScore == nil || info.AwayScore == nil || info.Winner == "" {
		return nil
	}
	out := []string{fmt.Sprintf("The %s defeated the %s %d-%d.",
		info.Winner, info.Loser, winnerScore(info), loserScore(info))}
	if info.Winner == "Tie" {
		out[0] = fmt.Sprintf("The game between the %s and the %s ended tied %d-%d.",
			info.AwayTeam, info.HomeTeam, *info.AwayScore, *info.HomeScore)
	}

	diff := *info.HomeScore - *info.AwayScore
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff >= 5:
		out = append(out, "A decisive victory.")
	case diff != 0 && diff <= 2:
		out = append(out, "A close contest decided by just a few runs.")
	}

	if info.WinningPitcher != "" {
		d := fmt.Sprintf("%s took the win", info.WinningPitcher)
		if info.LosingPitcher != "" {
			d += fmt.Sprintf(", %s the loss", info.LosingPitcher)
		}
		if info.SavePitcher != "" {
			d += fmt.Sprintf(", with %s earning the save", info.SavePitcher)
		}
		out = append(out, d+".")
	}
	return out
}

func winnerScore(info game.Info) int {
	if *info.HomeScore >= *info.AwayScore {
		return *info.HomeScore
	}
	return *info.AwayScore
}

func loserScore(info game.Info) int {
	if *info.HomeScore >= *info.AwayScore {
		return *info.AwayScore
	}
	return *info.HomeScore
}

// battingHighlights flags multi-hit games, home runs, and big RBI days.
func (l *Local) battingHighlights(lines []game.BattingLine) []string {
	out := make([]string, 0)
	for _, line := range lines {
		switch {
		case line.H >= 3:
			out = append(out, fmt.Sprintf("%s (%s) had a big day at the plate with %d hits.",
				line.Player, line.Team, line.H))
		case line.HR >= 1:
			out = append(out, fmt.Sprintf("%s (%s) homered %s.",
				line.Player, line.Team, times(line.HR)))
		case line.RBI >= 3:
			out = append(out, fmt.Sprintf("%s (%s) drove in %d runs.",
				line.Player, line.Team, line.RBI))
		}
	}
	return out
}

func times(n int) string {
	if n > 1 {
		return fmt.Sprintf("%d times", n)
	}
	return "once"
}

// pitchingHighlights covers starters (4+ innings) and dominant relief
// stints.
func (l *Local) pitchingHighlights(lines []game.PitchingLine) []string {
	out := make([]string, 0)
	for _, line := range lines {
		ip := line.InningsPitched()
		if ip >= 4 {
			s := fmt.Sprintf("%s (%s) pitched %s innings with %d earned runs and %d strikeouts.",
				line.Player, line.Team, line.IP, line.ER, line.SO)
			if line.ER == 0 && ip >= 5 {
				s += " A scoreless outing."
			} else if line.SO >= 6 {
				s += " A strong outing."
			}
			out = append(out, s)
			continue
		}
		if line.SO >= 3 && ip >= 1 {
			out = append(out, fmt.Sprintf("Reliever %s (%s) struck out %d in %s innings.",
				line.Player, line.Team, line.SO, line.IP))
		}
	}
	return out
}

// anomalies surfaces hitters who went hitless in 4+ at bats with heavy
// strikeouts and pitchers with control problems.
func (l *Local) anomalies(batting []game.BattingLine, pitching []game.PitchingLine) []string {
	out := make([]string, 0)
	for _, line := range batting {
		if line.SO >= 3 {
			out = append(out, fmt.Sprintf("%s (%s) struck out %d times.",
				line.Player, line.Team, line.SO))
		} else if line.H == 0 && line.AB >= 4 {
			out = append(out, fmt.Sprintf("%s (%s) went 0 for %d.",
				line.Player, line.Team, line.AB))
		}
	}
	for _, line := range pitching {
		if line.BB >= 4 {
			out = append(out, fmt.Sprintf("%s (%s) struggled with control, walking %d.",
				line.Player, line.Team, line.BB))
		}
		if ip := line.InningsPitched(); ip > 0 && ip < 3 && line.ER >= 3 {
			out = append(out, fmt.Sprintf("Rough outing for %s (%s): %d earned runs in %s innings.",
				line.Player, line.Team, line.ER, line.IP))
		}
	}
	return out
}
