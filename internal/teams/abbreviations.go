package teams

// abbreviations maps current franchise names to their standard abbreviations.
var abbreviations = map[string]string{
	"Arizona Cardinals":    "ARI",
	"Atlanta Falcons":      "ATL",
	"Baltimore Ravens":     "BAL",
	"Buffalo Bills":        "BUF",
	"Carolina Panthers":    "CAR",
	"Chicago Bears":        "CHI",
	"Cincinnati Bengals":   "CIN",
	"Cleveland Browns":     "CLE",
	"Dallas Cowboys":       "DAL",
	"Denver Broncos":       "DEN",
	"Detroit Lions":        "DET",
	"Green Bay Packers":    "GB",
	"Houston Texans":       "HOU",
	"Indianapolis Colts":   "IND",
	"Jacksonville Jaguars": "JAX",
	"Kansas City Chiefs":   "KC",
	"Las Vegas Raiders":    "LVR",
	"Los Angeles Chargers": "LAC",
	"Los Angeles Rams":     "LAR",
	"Miami Dolphins":       "MIA",
	"Minnesota Vikings":    "MIN",
	"New England Patriots": "NE",
	"New Orleans Saints":   "NO",
	"New York Giants":      "NYG",
	"New York Jets":        "NYJ",
	"Philadelphia Eagles":  "PHI",
	"Pittsburgh Steelers":  "PIT",
	"San Francisco 49ers":  "SF",
	"Seattle Seahawks":     "SEA",
	"Tampa Bay Buccaneers": "TB",
	"Tennessee Titans":     "TEN",
	"Washington Commanders": "WAS",
}

// Abbreviation returns the standard abbreviation for a current franchise
// name, or "" for names without one (defunct franchises).
func Abbreviation(name string) string {
	return abbreviations[name]
}
