package features

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// forwardCols are overwritten with the next game's values: after staggering,
// a row's features describe the prior game and its labels the next one.
var forwardCols = []string{
	"outcome", "home_or_away", "postseason", "opponent", "date", "stadium",
}

// unrenamedCols keep their names through the prev_ rename; everything else
// describes the prior game's own stats.
var unrenamedCols = map[string]bool{
	"outcome": true, "home_or_away": true, "postseason": true,
	"team": true, "opponent": true, "date": true, "stadium": true,
	"current_team": true, "opp_current_team": true,
	"team_win_pct": true, "opp_win_pct": true,
	"team_win_streak": true, "opp_win_streak": true,
}

// Stagger groups perspective rows by team and season, sorts each group
// chronologically, and pairs every game with its successor: forward-looking
// fields come from the next game while the stat columns (renamed prev_*)
// stay with the current one. Win percentage and streak aggregates use only
// strictly earlier games in the group. The season's final game has no
// successor and is dropped. resolve maps a printed team name to its current
// franchise identity.
func Stagger(t *Table, resolve func(string) (string, bool)) (*Table, error) {
	groups, teamNames, err := groupByTeamSeason(t.Rows)
	if err != nil {
		return nil, err
	}

	out := NewTable(nil)
	for _, col := range t.Cols {
		if col == "game_index" {
			continue
		}
		if unrenamedCols[col] {
			out.Cols = append(out.Cols, col)
		} else {
			out.Cols = append(out.Cols, "prev_"+col)
		}
	}
	out.Cols = append(out.Cols,
		"current_team", "opp_current_team",
		"team_win_pct", "opp_win_pct",
		"team_win_streak", "opp_win_streak",
		"prev_game_index",
	)

	for _, team := range teamNames {
		seasons := make([]int, 0, len(groups[team]))
		for season := range groups[team] {
			seasons = append(seasons, season)
		}
		sort.Ints(seasons)

		for _, season := range seasons {
			games := groups[team][season]

			for index := 0; index < len(games)-1; index++ {
				game := games[index]
				next := games[index+1]

				row := make(map[string]string, len(game)+7)
				for col, value := range game {
					switch {
					case col == "game_index":
						row["prev_game_index"] = value
					case unrenamedCols[col]:
						row[col] = value
					default:
						row["prev_"+col] = value
					}
				}

				for _, col := range forwardCols {
					if value, ok := next[col]; ok {
						row[col] = value
					} else {
						delete(row, col)
					}
				}

				row["current_team"] = resolveOr(resolve, team)
				row["opp_current_team"] = resolveOr(resolve, next["opponent"])

				opponent := groups[next["opponent"]][season]
				if pct, ok := winPercentage(games, index); ok {
					row["team_win_pct"] = pct
				}
				if pct, ok := winPercentage(opponent, index); ok {
					row["opp_win_pct"] = pct
				}
				row["team_win_streak"] = winStreak(games, index)
				row["opp_win_streak"] = winStreak(opponent, index)

				out.Rows = append(out.Rows, row)
			}
		}
	}

	return out, nil
}

// groupByTeamSeason buckets rows by (team, season) in chronological order.
// January through June games belong to the prior fall's season.
func groupByTeamSeason(rows []map[string]string) (map[string]map[int][]map[string]string, []string, error) {
	groups := make(map[string]map[int][]map[string]string)

	for i, row := range rows {
		date, err := time.Parse(rawDateFormat, row["date"])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: parsing date %q: %w", i, row["date"], err)
		}
		season := date.Year()
		if date.Month() <= time.June {
			season--
		}

		team := row["team"]
		if groups[team] == nil {
			groups[team] = make(map[int][]map[string]string)
		}
		groups[team][season] = append(groups[team][season], row)
	}

	teamNames := make([]string, 0, len(groups))
	for team, seasons := range groups {
		teamNames = append(teamNames, team)
		for season := range seasons {
			games := seasons[season]
			sort.SliceStable(games, func(a, b int) bool {
				da, _ := time.Parse(rawDateFormat, games[a]["date"])
				db, _ := time.Parse(rawDateFormat, games[b]["date"])
				return da.Before(db)
			})
		}
	}
	sort.Strings(teamNames)

	return groups, teamNames, nil
}

func resolveOr(resolve func(string) (string, bool), name string) string {
	if current, ok := resolve(name); ok {
		return current
	}
	return name
}

func rowOutcome(row map[string]string) float64 {
	f, _ := strconv.ParseFloat(row["outcome"], 64)
	return f
}

// winPercentage is wins over games played, strictly over the games before
// index. Undefined at index 0. The denominator is always index, even when
// the group is shorter.
func winPercentage(games []map[string]string, index int) (string, bool) {
	if index == 0 {
		return "", false
	}

	wins := 0.0
	for i := 0; i < index && i < len(games); i++ {
		wins += rowOutcome(games[i])
	}
	return formatFloat(wins / float64(index)), true
}

// winStreak is the running same-outcome streak over the games before index.
// A tie neither extends nor breaks it; the sign flips when the outcome flips.
func winStreak(games []map[string]string, index int) string {
	streak := 0.0
	for i := 0; i < index && i < len(games); i++ {
		outcome := rowOutcome(games[i])
		switch {
		case (streak >= 1 && outcome == 0) || (streak <= -1 && outcome == 1):
			streak = -streak
		case outcome != 0.5:
			sign := 1.0
			if streak != 0 {
				sign = streak / math.Abs(streak)
			}
			streak = sign * outcome
		}
	}
	return formatFloat(streak)
}
