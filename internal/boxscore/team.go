package boxscore

import (
	"regexp"
	"strings"
)

// Table IDs come in two shapes: "box-ARI-batting" style with a standard
// abbreviation embedded, and "ArizonaDiamondbacksbatting" style with the
// concatenated team name.
var boxIDPattern = regexp.MustCompile(`(?i)^box-([a-z]{2,3})-`)

// teamAbbrevs maps lowercase concatenated team names, as they appear in
// table IDs, to standard abbreviations.
var teamAbbrevs = map[string]string{
	"arizonadiamondbacks":  "ARI",
	"atlantabraves":        "ATL",
	"baltimoreorioles":     "BAL",
	"bostonredsox":         "BOS",
	"chicagocubs":          "CHC",
	"chicagowhitesox":      "CHW",
	"cincinnatireds":       "CIN",
	"clevelandguardians":   "CLE",
	"coloradorockies":      "COL",
	"detroittigers":        "DET",
	"houstonastros":        "HOU",
	"kansascityroyals":     "KCR",
	"losangelesangels":     "LAA",
	"losangelesdodgers":    "LAD",
	"miamimarlins":         "MIA",
	"milwaukeebrewers":     "MIL",
	"minnesotatwins":       "MIN",
	"newyorkmets":          "NYM",
	"newyorkyankees":       "NYY",
	"oaklandathletics":     "OAK",
	"philadelphiaphillies": "PHI",
	"pittsburghpirates":    "PIT",
	"sandiegopadres":       "SDP",
	"seattlemariners":      "SEA",
	"sanfranciscogiants":   "SFG",
	"stlouiscardinals":     "STL",
	"tampabayrays":         "TBR",
	"texasrangers":         "TEX",
	"torontobluejays":      "TOR",
	"washingtonnationals":  "WSN",
}

// teamFromTableID derives a team abbreviation from a stat table ID.
// suffix is the stat kind the ID ends with ("batting" or "pitching").
// Unrecognized IDs fall back to the cleaned ID uppercased.
func teamFromTableID(id, suffix string) string {
	if m := boxIDPattern.FindStringSubmatch(id); m != nil {
		return strings.ToUpper(m[1])
	}

	cleaned := strings.ToLower(id)
	cleaned = strings.TrimSuffix(cleaned, strings.ToLower(suffix))
	cleaned = strings.TrimPrefix(cleaned, "box-")
	if abbr, ok := teamAbbrevs[cleaned]; ok {
		return abbr
	}
	if cleaned == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(cleaned)
}
