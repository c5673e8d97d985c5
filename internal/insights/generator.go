package insights

import (
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/config"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
)

// GameData gathers everything known about one game for note generation.
// Odds may be empty when the odds client is disabled or found nothing.
type GameData struct {
	Info     game.Info
	Batting  []game.BattingLine
	Pitching []game.PitchingLine
	Lineups  []game.LineupEntry
	Odds     []game.OddsLine
}

// Generator produces one InsightNote per game.
type Generator interface {
	Generate(data GameData) (game.InsightNote, error)
}

// ForConfig selects a generator: the LLM client when an API key is
// present, the local heuristic generator otherwise.
func ForConfig(cfg config.Insights) Generator {
	if cfg.APIKey != "" {
		return NewLLM(cfg)
	}
	return NewLocal()
}

// note builds the envelope shared by both generators.
func note(data GameData, source, text string) game.InsightNote {
	return game.InsightNote{
		GameDate: data.Info.GameDate,
		HomeTeam: data.Info.HomeTeam,
		AwayTeam: data.Info.AwayTeam,
		Source:   source,
		Notes:    text,
	}
}
