package features

import (
	"fmt"
	"strconv"
	"strings"
)

// compositeParts maps a composite stat column (unprefixed) to the columns
// its hyphen-separated parts expand into.
var compositeParts = map[string][]string{
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

// dashCols carry a double hyphen when the count is zero ("3--45"); it must
// collapse to a single separator before splitting.
var dashCols = map[string]bool{
	"punt_returns":         true,
	"kickoff_returns":      true,
	"interception_returns": true,
}

// nullableCols are zero-filled when empty or non-numeric after expansion.
var nullableCols = []string{
	"had_blocked", "int_returns", "int_returns_yds",
	"punts", "punts_avg", "fg_made", "fg_att",
}

// percentCols convert "43.5%" to its decimal fraction after expansion.
var percentCols = []string{
	"third_downs_percent", "fourth_downs_percent",
}

// expandRenames clarify page labels whose meaning depends on table position.
var expandRenames = map[string]string{
	"rushing":      "first_downs_rushing",
	"passing":      "first_downs_passing",
	"penalty":      "first_downs_penalty",
	"average_gain": "rush_avg",
	"avg_yds/att":  "pass_att_avg",
}

func prefixed(name string) [2]string {
	return [2]string{"away_" + name, "home_" + name}
}

// Expand splits every composite stat column into its numeric parts, converts
// time of possession to seconds, renames ambiguous labels, and applies the
// percent and null normalizations. Dash collapse happens before splitting;
// percent and null handling after, scoped to the expanded names.
func Expand(t *Table) (*Table, error) {
	out := NewTable(nil)

	// Column order: originals in place, each composite replaced by its parts.
	for _, col := range t.Cols {
		base, prefix, ok := splitPrefix(col)
		if !ok {
			out.Cols = append(out.Cols, col)
			continue
		}
		if parts, isComposite := compositeParts[base]; isComposite {
			for _, part := range parts {
				out.Cols = append(out.Cols, prefix+part)
			}
			continue
		}
		if renamed, isRenamed := expandRenames[base]; isRenamed {
			out.Cols = append(out.Cols, prefix+renamed)
			continue
		}
		out.Cols = append(out.Cols, col)
	}

	for i, row := range t.Rows {
		next := make(map[string]string, len(row))

		for col, value := range row {
			base, prefix, ok := splitPrefix(col)
			if !ok {
				next[col] = value
				continue
			}

			if parts, isComposite := compositeParts[base]; isComposite {
				if dashCols[base] {
					value = strings.ReplaceAll(value, "--", "-")
				}
				pieces := strings.SplitN(value, "-", len(parts))
				for j, part := range parts {
					if j < len(pieces) && pieces[j] != "" {
						next[prefix+part] = pieces[j]
					}
				}
				continue
			}

			if base == "time_of_possession" {
				secs, err := toSeconds(value)
				if err != nil {
					return nil, fmt.Errorf("row %d: %s: %w", i, col, err)
				}
				next[col] = strconv.Itoa(secs)
				continue
			}

			if renamed, isRenamed := expandRenames[base]; isRenamed {
				next[prefix+renamed] = value
				continue
			}

			next[col] = value
		}

		for _, base := range percentCols {
			for _, col := range prefixed(base) {
				if value, ok := next[col]; ok {
					f, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
					if err != nil {
						return nil, fmt.Errorf("row %d: %s: parsing percent %q", i, col, value)
					}
					next[col] = formatFloat(f / 100)
				}
			}
		}

		for _, base := range nullableCols {
			for _, col := range prefixed(base) {
				if value, ok := next[col]; !ok || value == "" {
					next[col] = "0"
				} else if _, err := strconv.ParseFloat(value, 64); err != nil {
					next[col] = "0"
				}
			}
		}

		out.Rows = append(out.Rows, next)
	}

	return out, nil
}

func splitPrefix(col string) (base, prefix string, ok bool) {
	switch {
	case strings.HasPrefix(col, "away_"):
		return col[len("away_"):], "away_", true
	case strings.HasPrefix(col, "home_"):
		return col[len("home_"):], "home_", true
	}
	return "", "", false
}

// toSeconds converts a "MM:SS" clock string to total seconds.
func toSeconds(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", clock)
	}
	mins, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", clock)
	}
	secs, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", clock)
	}
	return mins*60 + secs, nil
}

// formatFloat renders floats the shortest way that round-trips, so 0.435
// never prints as 0.43500000000000005.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
