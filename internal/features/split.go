package features

import (
	"fmt"
	"strconv"
	"strings"
)

// splitIdentityCols are carried onto both perspective rows unchanged.
var splitIdentityCols = []string{
	"date", "week", "postseason", "stadium", "attendance", "overtime",
}

// Split turns each game row into two perspective rows: one with the away
// team as subject, one with the home team. Outcome compares the raw final
// scores (1 win, 0 loss, 0.5 tie); the home row gets the reciprocal. The
// away row carries home_or_away=1. "unknown" attendance becomes null here.
func Split(t *Table) (*Table, error) {
	out := NewTable(nil)
	out.Cols = append(out.Cols, splitIdentityCols...)
	out.Cols = append(out.Cols, "outcome", "home_or_away", "team", "opponent", "game_index")
	for _, col := range t.Cols {
		if base, _, ok := splitPrefix(col); ok && base != "team" {
			out.Cols = append(out.Cols, "team_"+base)
		}
	}
	for _, col := range t.Cols {
		if base, _, ok := splitPrefix(col); ok && base != "team" {
			out.Cols = append(out.Cols, "opp_"+base)
		}
	}

	for i, row := range t.Rows {
		awayScore, err := strconv.ParseFloat(row["away_score"], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: missing away_score", i)
		}
		homeScore, err := strconv.ParseFloat(row["home_score"], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: missing home_score", i)
		}

		var outcome float64
		switch {
		case awayScore > homeScore:
			outcome = 1
		case awayScore < homeScore:
			outcome = 0
		default:
			outcome = 0.5
		}

		base := make(map[string]string, len(splitIdentityCols))
		for _, col := range splitIdentityCols {
			if value, ok := row[col]; ok {
				base[col] = value
			}
		}
		if base["attendance"] == "unknown" {
			delete(base, "attendance")
		}

		gameIndex := row["index"]
		if gameIndex == "" {
			gameIndex = strconv.Itoa(i)
		}

		away := perspectiveRow(base, row, "away_", "home_")
		away["outcome"] = formatFloat(outcome)
		away["home_or_away"] = "1"
		away["team"] = row["away_team"]
		away["opponent"] = row["home_team"]
		away["game_index"] = gameIndex

		home := perspectiveRow(base, row, "home_", "away_")
		home["outcome"] = formatFloat(1 - outcome)
		home["home_or_away"] = "0"
		home["team"] = row["home_team"]
		home["opponent"] = row["away_team"]
		home["game_index"] = gameIndex

		out.Rows = append(out.Rows, away, home)
	}

	return out, nil
}

// perspectiveRow copies the subject's columns under team_ and the
// counterpart's under opp_.
func perspectiveRow(base, row map[string]string, subject, other string) map[string]string {
	r := make(map[string]string, len(row))
	for col, value := range base {
		r[col] = value
	}
	for col, value := range row {
		if col == subject+"team" || col == other+"team" {
			continue
		}
		if strings.HasPrefix(col, subject) {
			r["team_"+col[len(subject):]] = value
		} else if strings.HasPrefix(col, other) {
			r["opp_"+col[len(other):]] = value
		}
	}
	return r
}
