package game

import "strings"

// defaultTeamNames maps the abbreviations and short names seen on
// schedule and box score pages to the full names used by the odds API.
// The two league entries cover the All-Star Game.
var defaultTeamNames = map[string]string{
	"ANA": "Los Angeles Angels",
	"LAA": "Los Angeles Angels",
	"AZ":  "Arizona Diamondbacks",
	"ARI": "Arizona Diamondbacks",
	"ATL": "Atlanta Braves",
	"BAL": "Baltimore Orioles",
	"BOS": "Boston Red Sox",
	"CHC": "Chicago Cubs",
	"CWS": "Chicago White Sox",
	"CHW": "Chicago White Sox",
	"CIN": "Cincinnati Reds",
	"CLE": "Cleveland Guardians",
	"COL": "Colorado Rockies",
	"DET": "Detroit Tigers",
	"HOU": "Houston Astros",
	"KC":  "Kansas City Royals",
	"KCR": "Kansas City Royals",
	"LA":  "Los Angeles Dodgers",
	"LAD": "Los Angeles Dodgers",
	"MIA": "Miami Marlins",
	"MIL": "Milwaukee Brewers",
	"MIN": "Minnesota Twins",
	"NYM": "New York Mets",
	"NYY": "New York Yankees",
	"OAK": "Oakland Athletics",
	"PHI": "Philadelphia Phillies",
	"PIT": "Pittsburgh Pirates",
	"SD":  "San Diego Padres",
	"SDP": "San Diego Padres",
	"SEA": "Seattle Mariners",
	"SF":  "San Francisco Giants",
	"SFG": "San Francisco Giants",
	"STL": "St. Louis Cardinals",
	"TB":  "Tampa Bay Rays",
	"TBR": "Tampa Bay Rays",
	"TEX": "Texas Rangers",
	"TOR": "Toronto Blue Jays",
	"WSH": "Washington Nationals",
	"WSN": "Washington Nationals",
	"WAS": "Washington Nationals",

	"National League": "National League",
	"American League": "American League",
}

// DefaultTeamNameMap returns a copy of the built-in team name map so a
// caller can layer config overrides on top without mutating the default.
func DefaultTeamNameMap() map[string]string {
	m := make(map[string]string, len(defaultTeamNames))
	for k, v := range defaultTeamNames {
		m[k] = v
	}
	return m
}

// StandardTeamName converts a team label into its standardized full name
// using the given map (nil falls back to the built-in map). Lookup tries
// an exact key match, then a case-insensitive match against both keys
// and values. Unknown labels pass through unchanged.
func StandardTeamName(name string, teamNames map[string]string) string {
	if teamNames == nil {
		teamNames = defaultTeamNames
	}
	if full, ok := teamNames[name]; ok {
		return full
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for k, v := range teamNames {
		if strings.ToLower(k) == lower || strings.ToLower(v) == lower {
			return v
		}
	}
	return name
}
