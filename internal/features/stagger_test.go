package features

import "testing"

// staggerFixture is a three-game season for the Cowboys (win, loss, win)
// against three different opponents, with each opponent's reciprocal rows so
// opponent aggregates resolve.
func staggerFixture() *Table {
	in := NewTable([]string{
		"date", "week", "postseason", "stadium", "attendance", "overtime",
		"outcome", "home_or_away", "team", "opponent", "game_index",
		"team_score", "opp_score",
	})

	add := func(date, outcome, homeOrAway, team, opponent, gameIndex, stadium string) {
		in.Rows = append(in.Rows, map[string]string{
			"date": date, "week": "1", "postseason": "0", "stadium": stadium,
			"overtime": "false", "outcome": outcome, "home_or_away": homeOrAway,
			"team": team, "opponent": opponent, "game_index": gameIndex,
			"team_score": "20", "opp_score": "10",
		})
	}

	add("September 10, 2023", "1", "1", "Dallas Cowboys", "Philadelphia Eagles", "0", "Lincoln Financial Field")
	add("September 10, 2023", "0", "0", "Philadelphia Eagles", "Dallas Cowboys", "0", "Lincoln Financial Field")
	add("September 17, 2023", "0", "0", "Dallas Cowboys", "New York Giants", "1", "AT&T Stadium")
	add("September 17, 2023", "1", "1", "New York Giants", "Dallas Cowboys", "1", "AT&T Stadium")
	add("September 24, 2023", "1", "0", "Dallas Cowboys", "Washington Commanders", "2", "AT&T Stadium")
	add("September 24, 2023", "0", "1", "Washington Commanders", "Dallas Cowboys", "2", "AT&T Stadium")
	return in
}

func identityResolve(name string) (string, bool) { return name, true }

func cowboysRows(t *testing.T, out *Table) []map[string]string {
	t.Helper()
	var rows []map[string]string
	for _, row := range out.Rows {
		if row["team"] == "Dallas Cowboys" {
			rows = append(rows, row)
		}
	}
	return rows
}

func TestStaggerDropsFinalGame(t *testing.T) {
	out, err := Stagger(staggerFixture(), identityResolve)
	if err != nil {
		t.Fatalf("Stagger failed: %v", err)
	}

	// Each of the four teams loses its season-final game: 3+1+1+1 games
	// become 2+0+0+0 rows.
	if len(out.Rows) != 2 {
		t.Fatalf("expected 2 staggered rows, got %d", len(out.Rows))
	}
	if rows := cowboysRows(t, out); len(rows) != 2 {
		t.Fatalf("expected 2 Cowboys rows, got %d", len(rows))
	}
}

func TestStaggerForwardLooking(t *testing.T) {
	out, err := Stagger(staggerFixture(), identityResolve)
	if err != nil {
		t.Fatalf("Stagger failed: %v", err)
	}
	rows := cowboysRows(t, out)

	first := rows[0]
	if first["outcome"] != "0" {
		t.Errorf("first row outcome = %q, expected next game's 0", first["outcome"])
	}
	if first["opponent"] != "New York Giants" {
		t.Errorf("first row opponent = %q, expected next game's", first["opponent"])
	}
	if first["date"] != "September 17, 2023" {
		t.Errorf("first row date = %q, expected next game's", first["date"])
	}
	if first["stadium"] != "AT&T Stadium" {
		t.Errorf("first row stadium = %q, expected next game's", first["stadium"])
	}

	// The row's own stats stay put under prev_.
	if first["prev_team_score"] != "20" {
		t.Errorf("prev_team_score = %q, expected 20", first["prev_team_score"])
	}
	if first["prev_game_index"] != "0" {
		t.Errorf("prev_game_index = %q, expected 0", first["prev_game_index"])
	}
	if _, ok := first["game_index"]; ok {
		t.Error("game_index should be renamed to prev_game_index")
	}
}

func TestStaggerWinAggregates(t *testing.T) {
	out, err := Stagger(staggerFixture(), identityResolve)
	if err != nil {
		t.Fatalf("Stagger failed: %v", err)
	}
	rows := cowboysRows(t, out)

	// Index 0: no prior games, so win pct is undefined and streak is 0.
	if _, ok := rows[0]["team_win_pct"]; ok {
		t.Errorf("index 0 team_win_pct = %q, expected absent", rows[0]["team_win_pct"])
	}
	if rows[0]["team_win_streak"] != "0" {
		t.Errorf("index 0 team_win_streak = %q, expected 0", rows[0]["team_win_streak"])
	}

	// Index 1: one prior win.
	if rows[1]["team_win_pct"] != "1" {
		t.Errorf("index 1 team_win_pct = %q, expected 1", rows[1]["team_win_pct"])
	}
	if rows[1]["team_win_streak"] != "1" {
		t.Errorf("index 1 team_win_streak = %q, expected 1", rows[1]["team_win_streak"])
	}
}

func TestStaggerCurrentTeamResolution(t *testing.T) {
	in := NewTable([]string{
		"date", "postseason", "stadium", "outcome", "home_or_away",
		"team", "opponent", "game_index",
	})
	add := func(date, outcome, team, opponent, gameIndex string) {
		in.Rows = append(in.Rows, map[string]string{
			"date": date, "postseason": "0", "stadium": "Busch Memorial Stadium",
			"outcome": outcome, "home_or_away": "0",
			"team": team, "opponent": opponent, "game_index": gameIndex,
		})
	}
	add("September 10, 1978", "1", "St. Louis Cardinals", "Dallas Cowboys", "0")
	add("September 10, 1978", "0", "Dallas Cowboys", "St. Louis Cardinals", "0")
	add("September 17, 1978", "0", "St. Louis Cardinals", "Dallas Cowboys", "1")
	add("September 17, 1978", "1", "Dallas Cowboys", "St. Louis Cardinals", "1")

	resolve := func(name string) (string, bool) {
		if name == "St. Louis Cardinals" {
			return "Arizona Cardinals", true
		}
		return name, true
	}

	out, err := Stagger(in, resolve)
	if err != nil {
		t.Fatalf("Stagger failed: %v", err)
	}

	for _, row := range out.Rows {
		if row["team"] == "St. Louis Cardinals" && row["current_team"] != "Arizona Cardinals" {
			t.Errorf("current_team = %q, expected Arizona Cardinals", row["current_team"])
		}
		if row["opponent"] == "St. Louis Cardinals" && row["opp_current_team"] != "Arizona Cardinals" {
			t.Errorf("opp_current_team = %q, expected Arizona Cardinals", row["opp_current_team"])
		}
	}
}

func TestStaggerSeasonBoundary(t *testing.T) {
	in := NewTable([]string{
		"date", "postseason", "stadium", "outcome", "home_or_away",
		"team", "opponent", "game_index",
	})
	// A January game belongs to the prior fall's season, so these two games
	// form one two-game 2023 season, not two one-game seasons.
	in.Rows = append(in.Rows, map[string]string{
		"date": "December 31, 2023", "postseason": "0", "stadium": "AT&T Stadium",
		"outcome": "1", "home_or_away": "0",
		"team": "Dallas Cowboys", "opponent": "Detroit Lions", "game_index": "0",
	})
	in.Rows = append(in.Rows, map[string]string{
		"date": "January 7, 2024", "postseason": "0", "stadium": "FedExField",
		"outcome": "1", "home_or_away": "1",
		"team": "Dallas Cowboys", "opponent": "Washington Commanders", "game_index": "1",
	})

	out, err := Stagger(in, identityResolve)
	if err != nil {
		t.Fatalf("Stagger failed: %v", err)
	}

	if len(out.Rows) != 1 {
		t.Fatalf("expected 1 row from a joined two-game season, got %d", len(out.Rows))
	}
	if out.Rows[0]["opponent"] != "Washington Commanders" {
		t.Errorf("opponent = %q, expected the January game's", out.Rows[0]["opponent"])
	}
}

func TestWinStreak(t *testing.T) {
	games := func(outcomes ...string) []map[string]string {
		var rows []map[string]string
		for _, o := range outcomes {
			rows = append(rows, map[string]string{"outcome": o})
		}
		return rows
	}

	tests := []struct {
		name     string
		games    []map[string]string
		index    int
		expected string
	}{
		{"no prior games", games("1"), 0, "0"},
		{"single win", games("1", "0"), 1, "1"},
		{"loss flips streak", games("1", "0"), 2, "-1"},
		{"tie is a no-op", games("1", "0.5"), 2, "1"},
		{"win flips losing streak", games("0", "0", "1"), 3, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := winStreak(tt.games, tt.index); got != tt.expected {
				t.Errorf("winStreak = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestWinPercentage(t *testing.T) {
	games := []map[string]string{
		{"outcome": "1"}, {"outcome": "0"}, {"outcome": "0.5"}, {"outcome": "1"},
	}

	if _, ok := winPercentage(games, 0); ok {
		t.Error("win percentage should be undefined at index 0")
	}
	if got, _ := winPercentage(games, 1); got != "1" {
		t.Errorf("winPercentage(1) = %q, expected 1", got)
	}
	if got, _ := winPercentage(games, 2); got != "0.5" {
		t.Errorf("winPercentage(2) = %q, expected 0.5", got)
	}
	if got, _ := winPercentage(games, 4); got != "0.625" {
		t.Errorf("winPercentage(4) = %q, expected 0.625", got)
	}
}
