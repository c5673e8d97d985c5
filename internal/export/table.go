package export

import (
	"strconv"
	"strings"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
)

// Table is one logical output table: an ordered header row plus data
// rows, all stringified. Key names the worksheet config entry the table
// belongs to; Title is the worksheet tab title.
type Table struct {
	Key     string
	Title   string
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// keyColumns per table key. Rows agreeing on all key columns describe
// the same fact; the newer row replaces the older on merge.
var keyColumns = map[string][]string{
	"scores":   {"date", "away_team", "home_team"},
	"batting":  {"game_date", "player", "team"},
	"pitching": {"game_date", "player", "team"},
	"lineups":  {"game_date", "player", "team", "batting_order"},
	"summary":  {"game_date", "home_team", "away_team"},
	"betting":  {"game_date", "home_team", "away_team", "bookmaker", "market", "side"},
	"insights": {"game_date", "home_team", "away_team"},
}

// KeyColumns returns the merge key for this table. Tables without a
// registered key merge on the full row.
func (t *Table) KeyColumns() []string {
	return keyColumns[t.Key]
}

// MergeRows combines existing and incoming rows, deduplicating on the
// key columns with last write winning. A replaced row keeps its
// original position; genuinely new rows append in order. With no
// resolvable key columns the incoming rows replace nothing and append
// after the existing ones, deduplicated on the whole row.
func MergeRows(headers []string, existing, incoming [][]string, keyCols []string) [][]string {
	idx := make([]int, 0, len(keyCols))
	for _, col := range keyCols {
		for i, h := range headers {
			if h == col {
				idx = append(idx, i)
				break
			}
		}
	}
	// Fall back to whole-row identity when the key is unusable.
	if len(idx) != len(keyCols) || len(idx) == 0 {
		idx = idx[:0]
		for i := range headers {
			idx = append(idx, i)
		}
	}

	rowKey := func(row []string) string {
		parts := make([]string, 0, len(idx))
		for _, i := range idx {
			if i < len(row) {
				parts = append(parts, row[i])
			} else {
				parts = append(parts, "")
			}
		}
		return strings.Join(parts, "\x1f")
	}

	merged := make([][]string, 0, len(existing)+len(incoming))
	position := make(map[string]int, len(existing))

	for _, rows := range [][][]string{existing, incoming} {
		for _, row := range rows {
			key := rowKey(row)
			if at, seen := position[key]; seen {
				merged[at] = row
				continue
			}
			position[key] = len(merged)
			merged = append(merged, row)
		}
	}
	return merged
}

func intCell(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatCell(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

func pointCell(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}

// ScoresTable builds the daily scores table.
func ScoresTable(title string, records []*game.Record) Table {
	t := Table{
		Key:     "scores",
		Title:   title,
		Headers: []string{"date", "away_team", "away_score", "home_team", "home_score", "box_score_url", "game_id"},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.Date, r.AwayTeam, intCell(r.AwayScore), r.HomeTeam, intCell(r.HomeScore), r.BoxScoreURL, r.ID,
		})
	}
	return t
}

// BattingTable builds the batting stats table.
func BattingTable(title string, lines []game.BattingLine) Table {
	t := Table{
		Key:   "batting",
		Title: title,
		Headers: []string{
			"game_date", "team", "player", "player_id",
			"AB", "R", "H", "RBI", "BB", "SO", "PA", "HR",
			"AVG", "OBP", "SLG", "OPS", "game_url",
		},
	}
	for _, l := range lines {
		t.Rows = append(t.Rows, []string{
			l.GameDate, l.Team, l.Player, l.PlayerID,
			strconv.Itoa(l.AB), strconv.Itoa(l.R), strconv.Itoa(l.H), strconv.Itoa(l.RBI),
			strconv.Itoa(l.BB), strconv.Itoa(l.SO), strconv.Itoa(l.PA), strconv.Itoa(l.HR),
			floatCell(l.AVG, 3), floatCell(l.OBP, 3), floatCell(l.SLG, 3), floatCell(l.OPS, 3),
			l.GameURL,
		})
	}
	return t
}

// PitchingTable builds the pitching stats table.
func PitchingTable(title string, lines []game.PitchingLine) Table {
	t := Table{
		Key:   "pitching",
		Title: title,
		Headers: []string{
			"game_date", "team", "player", "player_id",
			"IP", "H", "R", "ER", "BB", "SO", "HR", "ERA", "game_url",
		},
	}
	for _, l := range lines {
		t.Rows = append(t.Rows, []string{
			l.GameDate, l.Team, l.Player, l.PlayerID,
			l.IP, strconv.Itoa(l.H), strconv.Itoa(l.R), strconv.Itoa(l.ER),
			strconv.Itoa(l.BB), strconv.Itoa(l.SO), strconv.Itoa(l.HR),
			floatCell(l.ERA, 2), l.GameURL,
		})
	}
	return t
}

// LineupsTable builds the starting lineups table.
func LineupsTable(title string, entries []game.LineupEntry) Table {
	t := Table{
		Key:     "lineups",
		Title:   title,
		Headers: []string{"game_date", "team", "batting_order", "player", "position"},
	}
	for _, e := range entries {
		order := ""
		if e.BattingOrder > 0 {
			order = strconv.Itoa(e.BattingOrder)
		}
		t.Rows = append(t.Rows, []string{e.GameDate, e.Team, order, e.Player, e.Position})
	}
	return t
}

// GameInfoTable builds the per-game metadata table.
func GameInfoTable(title string, infos []game.Info) Table {
	t := Table{
		Key:   "summary",
		Title: title,
		Headers: []string{
			"game_date", "away_team", "home_team", "away_score", "home_score",
			"winner", "loser", "winning_pitcher", "losing_pitcher", "save_pitcher",
			"venue", "start_time", "duration", "attendance",
			"field_condition", "weather", "umpires",
		},
	}
	for _, info := range infos {
		t.Rows = append(t.Rows, []string{
			info.GameDate, info.AwayTeam, info.HomeTeam,
			intCell(info.AwayScore), intCell(info.HomeScore),
			info.Winner, info.Loser,
			info.WinningPitcher, info.LosingPitcher, info.SavePitcher,
			info.Venue, info.StartTime, info.Duration, info.Attendance,
			info.FieldCondition, info.Weather, strings.Join(info.Umpires, "; "),
		})
	}
	return t
}

// OddsTable builds the long-form betting odds table.
func OddsTable(title string, lines []game.OddsLine) Table {
	t := Table{
		Key:   "betting",
		Title: title,
		Headers: []string{
			"game_date", "away_team", "home_team", "bookmaker", "market",
			"side", "point", "price", "commence_time", "event_id",
		},
	}
	for _, l := range lines {
		t.Rows = append(t.Rows, []string{
			l.GameDate, l.AwayTeam, l.HomeTeam, l.Bookmaker, l.Market,
			l.Side, pointCell(l.Point), strconv.FormatFloat(l.Price, 'g', -1, 64),
			l.CommenceTime, l.EventID,
		})
	}
	return t
}

// InsightsTable builds the narrative notes table.
func InsightsTable(title string, notes []game.InsightNote) Table {
	t := Table{
		Key:     "insights",
		Title:   title,
		Headers: []string{"game_date", "away_team", "home_team", "source", "notes"},
	}
	for _, n := range notes {
		t.Rows = append(t.Rows, []string{n.GameDate, n.AwayTeam, n.HomeTeam, n.Source, n.Notes})
	}
	return t
}
