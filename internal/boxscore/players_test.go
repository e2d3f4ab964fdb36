package boxscore

import (
	"testing"
	"time"
)

var gameDate = time.Date(2023, time.December, 10, 0, 0, 0, 0, time.UTC)

func TestPlayerScannerStates(t *testing.T) {
	s := NewPlayerScanner("Dallas Cowboys", "Philadelphia Eagles", gameDate)

	if s.State() != ScanIdle {
		t.Fatalf("fresh scanner should be idle, got %v", s.State())
	}

	s.Feed("Passing")
	if s.State() != ScanIdle {
		t.Error("section heading must not change the scan state")
	}
	if s.Section() != SectionPassing {
		t.Errorf("expected passing section, got %v", s.Section())
	}

	s.Feed("Dallas Cowboys Passing")
	if s.State() != ScanHeaders {
		t.Error("team token should enter header collection")
	}
	if len(s.Headers()) != 0 {
		t.Error("team token should reset the pending header list")
	}

	s.Feed("Att")
	s.Feed("Comp")
	headers := s.Headers()
	if len(headers) != 2 || headers[0] != "pass_att" || headers[1] != "pass_comp" {
		t.Errorf("unexpected headers: %v", headers)
	}

	s.Feed("Dak PrescottD.\u00a0Prescott")
	if s.State() != ScanValues {
		t.Error("player marker should end header collection")
	}
	if _, ok := s.Players()["Dak Prescott"]; !ok {
		t.Fatalf("player record not initialized: %v", s.Players())
	}

	s.Feed("30")
	s.Feed("21")

	rec := s.Players()["Dak Prescott"]
	if rec.Stats["pass_att"] != "30" || rec.Stats["pass_comp"] != "21" {
		t.Errorf("positional assignment wrong: %v", rec.Stats)
	}
	if rec.Team != "Dallas Cowboys" {
		t.Errorf("expected team Dallas Cowboys, got %q", rec.Team)
	}
	if !rec.Date.Equal(gameDate) {
		t.Errorf("expected date %v, got %v", gameDate, rec.Date)
	}

	s.Feed("TeamTeam")
	if s.State() != ScanIdle {
		t.Error("TeamTeam artifact should reset to idle")
	}
	s.Feed("stray")
	if len(rec.Stats) != 2 {
		t.Error("tokens after a reset must not bind to the previous player")
	}
}

func TestScanPlayerTokensMultipleSections(t *testing.T) {
	tokens := []string{
		"Passing",
		"Dallas Cowboys Passing",
		"Att", "Comp", "Yds", "TD",
		"Dak PrescottD.\u00a0Prescott", "30", "21", "265", "2",
		"TeamTeam",
		"Rushing",
		"Philadelphia Eagles Rushing",
		"Att", "Yds", "TD",
		"Jalen HurtsJ.\u00a0Hurts", "12", "39", "1",
		".",
	}

	players := ScanPlayerTokens(tokens, "Dallas Cowboys", "Philadelphia Eagles", gameDate)

	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}

	dak := players["Dak Prescott"]
	if dak == nil {
		t.Fatal("missing Dak Prescott")
	}
	if dak.Stats["pass_yds"] != "265" || dak.Stats["pass_td"] != "2" {
		t.Errorf("passing stats wrong: %v", dak.Stats)
	}

	hurts := players["Jalen Hurts"]
	if hurts == nil {
		t.Fatal("missing Jalen Hurts")
	}
	if hurts.Team != "Philadelphia Eagles" {
		t.Errorf("expected Eagles, got %q", hurts.Team)
	}
	if hurts.Stats["rush_att"] != "12" || hurts.Stats["rush_yds"] != "39" {
		t.Errorf("rushing stats wrong: %v", hurts.Stats)
	}
	if _, ok := hurts.Stats["pass_att"]; ok {
		t.Error("player without passing rows must not carry passing columns")
	}
}

func TestScanPlayerTokensSparseRecords(t *testing.T) {
	// A player appearing in two sections accumulates onto one record keyed by
	// name; the extra-token case past the header list is dropped, not bound.
	tokens := []string{
		"Rushing",
		"Dallas Cowboys Rushing",
		"Att", "Yds",
		"Tony PollardT.\u00a0Pollard", "14", "55", "7",
		"Receiving",
		"Dallas Cowboys Receiving",
		"Rec", "Yds",
		"Tony PollardT.\u00a0Pollard", "3", "21",
	}

	players := ScanPlayerTokens(tokens, "Dallas Cowboys", "Philadelphia Eagles", gameDate)
	if len(players) != 1 {
		t.Fatalf("expected a single merged record, got %d", len(players))
	}

	rec := players["Tony Pollard"]
	if rec.Stats["rush_att"] != "14" || rec.Stats["rush_yds"] != "55" {
		t.Errorf("rushing stats wrong: %v", rec.Stats)
	}
	if rec.Stats["rec_rec"] != "3" || rec.Stats["rec_yds"] != "21" {
		t.Errorf("receiving stats wrong: %v", rec.Stats)
	}
	if len(rec.Stats) != 4 {
		t.Errorf("expected 4 bound stats, got %v", rec.Stats)
	}
}
