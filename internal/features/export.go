package features

import (
	"strconv"

	"github.com/fortuna/gridiron/internal/store"
)

// identityCols lead the raw table; every other column is an away_/home_
// prefixed stat.
var identityCols = []string{
	"index", "date", "week", "postseason", "stadium", "attendance", "overtime",
	"away_team", "home_team",
}

// scoreLabels are the scoreboard columns as captured at parse time.
var scoreLabels = []string{
	"score", "score_q1", "score_q2", "score_q3", "score_q4", "score_q5",
}

// rawStatLabels is the canonical order of the team comparison table's rows,
// normalized, composites intact.
var rawStatLabels = []string{
	"first_downs",
	"rushing",
	"passing",
	"penalty",
	"total_net_yards",
	"net_yards_rushing",
	"rushing_plays",
	"average_gain",
	"net_yards_passing",
	"att-comp-int",
	"sacked-yds_lost",
	"gross_yards_passing",
	"avg_yds/att",
	"punts-average",
	"had_blocked",
	"punt_returns",
	"kickoff_returns",
	"interception_returns",
	"penalties-yards",
	"fumbles-lost",
	"field_goals",
	"third_downs",
	"fourth_downs",
	"total_plays",
	"time_of_possession",
}

// RawGame is one persisted game with both teams' as-printed stat maps, the
// shape the raw table is built from.
type RawGame struct {
	Game    *store.Game
	AwayRaw map[string]string
	HomeRaw map[string]string
}

// rawDateFormat matches the date line as printed on game pages.
const rawDateFormat = "January 2, 2006"

// BuildRawTable lays persisted games out as the pipeline's raw input table:
// one row per game, identity columns first, then the away and home stat
// blocks. Callers must pass games in a stable order; the row index is the
// stagger stage's linkage key.
func BuildRawTable(games []RawGame) *Table {
	cols := append([]string(nil), identityCols...)
	for _, label := range scoreLabels {
		cols = append(cols, "away_"+label)
	}
	for _, label := range rawStatLabels {
		cols = append(cols, "away_"+label)
	}
	for _, label := range scoreLabels {
		cols = append(cols, "home_"+label)
	}
	for _, label := range rawStatLabels {
		cols = append(cols, "home_"+label)
	}

	t := NewTable(cols)
	for i, g := range games {
		row := map[string]string{
			"index":      strconv.Itoa(i),
			"date":       g.Game.Date.Format(rawDateFormat),
			"postseason": strconv.Itoa(g.Game.GameType),
			"stadium":    g.Game.StadiumName,
			"away_team":  g.Game.AwayTeamName,
			"home_team":  g.Game.HomeTeamName,
		}
		if g.Game.Week.Valid {
			row["week"] = strconv.Itoa(int(g.Game.Week.Int32))
		}
		if g.Game.Attendance.Valid {
			row["attendance"] = strconv.Itoa(int(g.Game.Attendance.Int32))
		} else {
			row["attendance"] = "unknown"
		}
		if g.Game.Overtime {
			row["overtime"] = "true"
		} else {
			row["overtime"] = "false"
		}

		for label, value := range g.AwayRaw {
			row["away_"+label] = value
		}
		for label, value := range g.HomeRaw {
			row["home_"+label] = value
		}

		t.Rows = append(t.Rows, row)
	}
	return t
}
