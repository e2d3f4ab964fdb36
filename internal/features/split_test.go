package features

import "testing"

func splitFixture() *Table {
	in := NewTable([]string{
		"index", "date", "week", "postseason", "stadium", "attendance", "overtime",
		"away_team", "home_team",
		"away_score", "home_score",
		"away_total_net_yards", "home_total_net_yards",
	})
	in.Rows = append(in.Rows, map[string]string{
		"index": "0", "date": "September 10, 2023", "week": "1",
		"postseason": "0", "stadium": "Lincoln Financial Field",
		"attendance": "69796", "overtime": "false",
		"away_team": "Dallas Cowboys", "home_team": "Philadelphia Eagles",
		"away_score": "24", "home_score": "17",
		"away_total_net_yards": "382", "home_total_net_yards": "301",
	})
	in.Rows = append(in.Rows, map[string]string{
		"index": "1", "date": "September 17, 2023", "week": "2",
		"postseason": "0", "stadium": "Soldier Field",
		"attendance": "unknown", "overtime": "true",
		"away_team": "Green Bay Packers", "home_team": "Chicago Bears",
		"away_score": "17", "home_score": "17",
		"away_total_net_yards": "288", "home_total_net_yards": "290",
	})
	return in
}

func TestSplitOutcomes(t *testing.T) {
	out, err := Split(splitFixture())
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(out.Rows) != 4 {
		t.Fatalf("expected 4 perspective rows, got %d", len(out.Rows))
	}

	away, home := out.Rows[0], out.Rows[1]

	if away["outcome"] != "1" {
		t.Errorf("away outcome = %q, expected 1", away["outcome"])
	}
	if home["outcome"] != "0" {
		t.Errorf("home outcome = %q, expected 0", home["outcome"])
	}
	if away["home_or_away"] != "1" || home["home_or_away"] != "0" {
		t.Errorf("home_or_away flags = %q/%q", away["home_or_away"], home["home_or_away"])
	}
	if away["team"] != "Dallas Cowboys" || away["opponent"] != "Philadelphia Eagles" {
		t.Errorf("away perspective teams = %q vs %q", away["team"], away["opponent"])
	}
	if away["team_score"] != "24" || away["opp_score"] != "17" {
		t.Errorf("away perspective scores = %q/%q", away["team_score"], away["opp_score"])
	}
	if home["team_score"] != "17" || home["opp_score"] != "24" {
		t.Errorf("home perspective scores = %q/%q", home["team_score"], home["opp_score"])
	}
	if away["game_index"] != "0" || home["game_index"] != "0" {
		t.Errorf("game_index = %q/%q", away["game_index"], home["game_index"])
	}

	// Tie produces 0.5 for both perspectives.
	tieAway, tieHome := out.Rows[2], out.Rows[3]
	if tieAway["outcome"] != "0.5" || tieHome["outcome"] != "0.5" {
		t.Errorf("tie outcomes = %q/%q, expected 0.5 each", tieAway["outcome"], tieHome["outcome"])
	}
}

func TestSplitUnknownAttendance(t *testing.T) {
	out, err := Split(splitFixture())
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if got := out.Rows[0]["attendance"]; got != "69796" {
		t.Errorf("known attendance = %q, expected 69796", got)
	}
	if _, ok := out.Rows[2]["attendance"]; ok {
		t.Error("unknown attendance should become absent")
	}
}

func TestSplitNoTeamNameColumns(t *testing.T) {
	out, err := Split(splitFixture())
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if out.HasCol("team_team") || out.HasCol("opp_team") {
		t.Error("team name columns should fold into team/opponent, not team_team/opp_team")
	}
}
