package boxscore

import (
	"errors"
	"testing"
	"time"
)

func TestParseGameFromFixture(t *testing.T) {
	seg := loadFixture(t, "boxscore_regular.html")

	game, err := ParseGame("https://example.com/boxscore", seg)
	if err != nil {
		t.Fatalf("ParseGame failed: %v", err)
	}

	if game.Week != 14 {
		t.Errorf("expected week 14, got %d", game.Week)
	}
	if game.Type != RegularSeason {
		t.Errorf("expected regular season, got %v", game.Type)
	}
	if game.AwayTeam != "Dallas Cowboys" || game.HomeTeam != "Philadelphia Eagles" {
		t.Errorf("unexpected teams: %q vs %q", game.AwayTeam, game.HomeTeam)
	}

	wantDate := time.Date(2023, time.December, 10, 0, 0, 0, 0, time.UTC)
	if !game.Date.Equal(wantDate) {
		t.Errorf("expected date %v, got %v", wantDate, game.Date)
	}
	if game.Stadium != "Lincoln Financial Field, Philadelphia" {
		t.Errorf("unexpected stadium: %q", game.Stadium)
	}
	if !game.HasAttendance || game.Attendance != 69796 {
		t.Errorf("expected attendance 69796, got %d (known=%v)", game.Attendance, game.HasAttendance)
	}

	if game.Overtime {
		t.Error("fixture game did not go to overtime")
	}
	if game.Away["score"] != 24 || game.Home["score"] != 17 {
		t.Errorf("unexpected final score: %v-%v", game.Away["score"], game.Home["score"])
	}
	if game.Away["score_q1"] != 7 || game.Home["score_q1"] != 3 {
		t.Errorf("unexpected q1: %v-%v", game.Away["score_q1"], game.Home["score_q1"])
	}
	if game.Away["score_overtime"] != 0 || game.Home["score_overtime"] != 0 {
		t.Error("non-overtime game should carry synthetic zero overtime scores")
	}

	if game.Away["first_downs"] != 22 || game.Home["first_downs"] != 19 {
		t.Errorf("first downs wrong: %v / %v", game.Away["first_downs"], game.Home["first_downs"])
	}
	if game.Away["pass_attempts"] != 30 || game.Away["pass_completions"] != 21 {
		t.Errorf("expanded passing stats wrong: %v", game.Away)
	}
	if game.Away["time_of_possession"] != 1872 {
		t.Errorf("possession not converted to seconds: %v", game.Away["time_of_possession"])
	}
	if game.Away["kickoff_returns"] != 3 || game.Away["kickoff_return_yards"] != 45 {
		t.Errorf("kickoff returns wrong: %v", game.Away)
	}

	if len(game.Players) != 2 {
		t.Fatalf("expected 2 player records, got %d", len(game.Players))
	}
	if game.Players["Dak Prescott"].Stats["pass_yds"] != "265" {
		t.Errorf("player stats wrong: %v", game.Players["Dak Prescott"].Stats)
	}
}

// scoreTokens builds a synthetic scoreboard token stream.
func scoreTokens(overtime bool, awayQ, homeQ []string, awayF, homeF string) []string {
	header := []string{"1", "2", "3", "4", "F"}
	if overtime {
		header = []string{"1", "2", "3", "4", "5", "F"}
	}
	tokens := append([]string{}, header...)
	tokens = append(tokens, "Away Club")
	tokens = append(tokens, awayQ...)
	tokens = append(tokens, awayF, "Home Club")
	tokens = append(tokens, homeQ...)
	tokens = append(tokens, homeF)
	return tokens
}

func titleLines(playoff string) []string {
	lines := []string{
		"Away Club vs Home Club",
		"January 14, 2024",
		"Arrowhead Stadium, Kansas City",
	}
	if playoff != "" {
		lines = append([]string{playoff}, lines...)
	}
	return lines
}

func TestParseGameOvertime(t *testing.T) {
	seg := &Segments{
		PageHeader: "2023 NFL Scores - Week 18",
		TitleLines: titleLines(""),
		ScoreTokens: scoreTokens(true,
			[]string{"7", "7", "3", "3", "6"}, []string{"10", "3", "7", "0", "0"},
			"26", "20"),
	}

	game, err := ParseGame("u", seg)
	if err != nil {
		t.Fatalf("ParseGame failed: %v", err)
	}

	if !game.Overtime {
		t.Fatal("expected overtime detection from fifth score column")
	}
	if game.Away["score_overtime"] != 6 || game.Home["score_overtime"] != 0 {
		t.Errorf("overtime scores wrong: %v / %v",
			game.Away["score_overtime"], game.Home["score_overtime"])
	}
	if game.Away["score"] != 26 || game.Home["score"] != 20 {
		t.Errorf("final scores wrong: %v-%v", game.Away["score"], game.Home["score"])
	}
}

func TestParseGamePlayoffOffset(t *testing.T) {
	tests := []struct {
		title string
		want  GameType
	}{
		{"AFC Wild Card Game", WildCard},
		{"NFC Divisional Playoff Game", Divisional},
		{"AFC Conference Championship", Conference},
		{"Super Bowl LVIII", SuperBowl},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			seg := &Segments{
				TitleLines: titleLines(tt.title),
				ScoreTokens: scoreTokens(false,
					[]string{"0", "7", "7", "3"}, []string{"7", "3", "0", "0"},
					"17", "10"),
			}

			game, err := ParseGame("u", seg)
			if err != nil {
				t.Fatalf("ParseGame failed: %v", err)
			}

			if game.Type != tt.want {
				t.Errorf("expected %v, got %v", tt.want, game.Type)
			}
			// The round label line shifts the remaining offsets by one.
			if game.AwayTeam != "Away Club" || game.HomeTeam != "Home Club" {
				t.Errorf("playoff offset not applied: %q vs %q", game.AwayTeam, game.HomeTeam)
			}
			if game.Stadium != "Arrowhead Stadium, Kansas City" {
				t.Errorf("stadium line shifted: %q", game.Stadium)
			}
		})
	}
}

func TestParseGameNoAttendance(t *testing.T) {
	seg := &Segments{
		TitleLines: titleLines(""),
		ScoreTokens: scoreTokens(false,
			[]string{"0", "0", "0", "0"}, []string{"0", "0", "0", "0"},
			"0", "0"),
	}

	game, err := ParseGame("u", seg)
	if err != nil {
		t.Fatalf("ParseGame failed: %v", err)
	}
	if game.HasAttendance {
		t.Error("attendance should be unrepresented when the line is absent")
	}
}

func TestParseGameMalformed(t *testing.T) {
	_, err := ParseGame("https://example.com/bad", &Segments{})

	var malformed *MalformedPageError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedPageError, got %v", err)
	}
	if malformed.URL != "https://example.com/bad" || malformed.Block != "title" {
		t.Errorf("unexpected error detail: %+v", malformed)
	}
}
