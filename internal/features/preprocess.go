package features

import (
	"fmt"
	"strconv"
	"time"
)

// recencyEpoch anchors the recency feature at the first covered season.
var recencyEpoch = time.Date(1978, time.January, 1, 0, 0, 0, 0, time.UTC)

// droppedCols are the identifier and linkage columns modeling has no use for
// once recency is derived.
var droppedCols = map[string]bool{
	"team": true, "opponent": true, "date": true, "stadium": true,
	"current_team": true, "opp_current_team": true, "prev_game_index": true,
}

// Preprocess derives the recency feature (days since 1978-01-01), coerces
// the overtime flag to 0/1, and drops identifier columns.
func Preprocess(t *Table) (*Table, error) {
	out := NewTable(nil)
	for _, col := range t.Cols {
		if !droppedCols[col] {
			out.Cols = append(out.Cols, col)
		}
	}
	out.Cols = append(out.Cols, "recency")

	for i, row := range t.Rows {
		date, err := time.Parse(rawDateFormat, row["date"])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i, row["date"], err)
		}

		next := make(map[string]string, len(row))
		for col, value := range row {
			if droppedCols[col] {
				continue
			}
			next[col] = value
		}

		switch next["prev_overtime"] {
		case "true":
			next["prev_overtime"] = "1"
		case "false":
			next["prev_overtime"] = "0"
		}

		next["recency"] = strconv.Itoa(int(date.Sub(recencyEpoch).Hours() / 24))
		out.Rows = append(out.Rows, next)
	}

	return out, nil
}
