package boxscore

import (
	"strconv"
	"strings"
)

// expandedCols maps a normalized composite row label to the ordered list of
// fields its hyphen-delimited value expands into.
var expandedCols = map[string][]string{
	"att-comp-int":         {"pass_att", "pass_comp", "pass_int"},
	"sacked-yds_lost":      {"sacked", "sacked_yds_lost"},
	"punts-average":        {"punts", "punts_avg"},
	"punt_returns":         {"punt_returns_count", "punt_returns_yds"},
	"kickoff_returns":      {"kickoff_returns_count", "kickoff_returns_yds"},
	"interception_returns": {"int_returns", "int_returns_yds"},
	"penalties-yards":      {"penalties", "penalties_yds"},
	"fumbles-lost":         {"fumbles", "fumbles_lost"},
	"field_goals":          {"fg_made", "fg_att"},
	"third_downs":          {"third_downs_made", "third_downs_att", "third_downs_percent"},
	"fourth_downs":         {"fourth_downs_made", "fourth_downs_att", "fourth_downs_percent"},
}

// dashCols are composite fields where the site prints "--" for a return of
// zero length; the double dash collapses to a single separator before the
// value is split.
var dashCols = map[string]bool{
	"punt_returns":         true,
	"kickoff_returns":      true,
	"interception_returns": true,
}

// nullableCols map an empty cell to zero rather than leaving the field unset.
var nullableCols = map[string]bool{
	"had_blocked":     true,
	"int_returns":     true,
	"int_returns_yds": true,
	"punts":           true,
	"punts_avg":       true,
	"fg_made":         true,
	"fg_att":          true,
}

// percentCols carry a trailing "%" and are stored as decimal fractions.
var percentCols = map[string]bool{
	"third_downs_percent":  true,
	"fourth_downs_percent": true,
}

// columnNameMapping translates normalized page labels (and expanded field
// names) into the canonical column names used by the store and the feature
// pipeline.
var columnNameMapping = map[string]string{
	"score":                "score",
	"score_q1":             "score_q1",
	"score_q2":             "score_q2",
	"score_q3":             "score_q3",
	"score_q4":             "score_q4",
	"score_q5":             "score_overtime",
	"first_downs":          "first_downs",
	"rushing":              "first_downs_rush",
	"passing":              "first_downs_pass",
	"penalty":              "first_downs_penalty",
	"total_net_yards":      "total_net_yards",
	"net_yards_rushing":    "rush_net_yards",
	"rushing_plays":        "rush_plays",
	"average_gain":         "rush_avg_gain",
	"net_yards_passing":    "pass_net_yards",
	"gross_yards_passing":  "pass_gross_yards",
	"pass_att":             "pass_attempts",
	"avg_yds/att":          "pass_avg_gain",
	"pass_comp":            "pass_completions",
	"pass_int":             "pass_interceptions",
	"sacked":               "pass_sacked",
	"sacked_yds_lost":      "pass_sacked_yards_lost",
	"punts":                "punts",
	"punts_avg":            "punts_avg",
	"punt_returns_count":   "punt_returns",
	"punt_returns_yds":     "punt_return_yards",
	"kickoff_returns_count": "kickoff_returns",
	"kickoff_returns_yds":  "kickoff_return_yards",
	"int_returns":          "interception_returns",
	"int_returns_yds":      "interception_return_yards",
	"penalties":            "penalties",
	"penalties_yds":        "penalty_yards",
	"fumbles":              "fumbles",
	"fumbles_lost":         "fumbles_lost",
	"fg_made":              "field_goals_made",
	"fg_att":               "field_goals_attempted",
	"third_downs_made":     "third_down_conversions",
	"third_downs_att":      "third_down_attempts",
	"third_downs_percent":  "third_down_rate",
	"fourth_downs_made":    "fourth_down_conversions",
	"fourth_downs_att":     "fourth_down_attempts",
	"fourth_downs_percent": "fourth_down_rate",
	"had_blocked":          "had_blocked",
	"time_of_possession":   "time_of_possession",
	"total_plays":          "total_plays",
}

// CanonicalName maps a normalized label or expanded field name to its
// canonical column name. Unknown labels map to themselves.
func CanonicalName(name string) string {
	if mapped, ok := columnNameMapping[name]; ok {
		return mapped
	}
	return name
}

// NormalizeLabel turns a team-stat row label cell into its canonical key:
// lowercased, spaces to underscores, the "_-_" artifact collapsed to "-",
// periods removed.
func NormalizeLabel(label string) string {
	s := strings.ToLower(label)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "_-_", "-")
	s = strings.ReplaceAll(s, ".", "")
	return s
}

// ToSeconds converts a clock string "MM:SS" to total seconds. The second
// return is false when the input is not a parseable clock value.
func ToSeconds(clock string) (int, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, false
	}
	mins, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	secs, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return mins*60 + secs, true
}

// ProcessStatValue applies the per-field unit conversions: double-dash
// normalization happens before composite splitting (see ExpandAssign), clock
// values become seconds, percentages become decimal fractions, and nullable
// fields map the empty string to zero. The second return is false when the
// value is empty and the field is not nullable.
func ProcessStatValue(value, statName string) (float64, bool) {
	if strings.Contains(statName, "time_of_possession") {
		secs, ok := ToSeconds(value)
		if !ok {
			return 0, false
		}
		return float64(secs), true
	}
	if percentCols[statName] {
		f, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return 0, false
		}
		return f / 100, true
	}
	if value == "" {
		if nullableCols[statName] {
			return 0, true
		}
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SplitComposite splits a composite "a-b" / "a-b-c" value into n parts,
// right-padding with empty strings when the source is short. Double dashes in
// fields that use them for empty returns must already be collapsed.
func SplitComposite(value string, n int) []string {
	parts := strings.Split(value, "-")
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if i < len(parts) {
			out[i] = parts[i]
		}
	}
	return out
}

// ExpandAssign processes one team-stat row and assigns the resulting canonical
// fields into the away and home stat maps. Composite rows expand into their
// declared field list; plain rows assign a single field. Fields that fail unit
// conversion on an expanded row fall back to zero, matching the historical
// behavior the downstream tables were built on.
func ExpandAssign(statName, awayValue, homeValue string, away, home TeamStats) {
	if dashCols[statName] {
		awayValue = strings.ReplaceAll(awayValue, "--", "-")
		homeValue = strings.ReplaceAll(homeValue, "--", "-")
	}

	if expanded, ok := expandedCols[statName]; ok {
		awayParts := SplitComposite(awayValue, len(expanded))
		homeParts := SplitComposite(homeValue, len(expanded))
		for i, name := range expanded {
			col := CanonicalName(name)
			if v, ok := ProcessStatValue(awayParts[i], name); ok {
				away[col] = v
			} else {
				away[col] = 0
			}
			if v, ok := ProcessStatValue(homeParts[i], name); ok {
				home[col] = v
			} else {
				home[col] = 0
			}
		}
		return
	}

	col := CanonicalName(statName)
	if v, ok := ProcessStatValue(awayValue, statName); ok {
		away[col] = v
	}
	if v, ok := ProcessStatValue(homeValue, statName); ok {
		home[col] = v
	}
}
