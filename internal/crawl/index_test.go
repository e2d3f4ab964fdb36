package crawl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func loadIndexFixture(t *testing.T) *goquery.Document {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", "season_index.html"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func TestIndexURL(t *testing.T) {
	got := IndexURL(DefaultBaseURL, 1978)
	expected := "https://www.footballdb.com/games/index.html?lg=NFL&yr=1978"
	if got != expected {
		t.Errorf("IndexURL = %q, expected %q", got, expected)
	}
}

func TestParseIndex(t *testing.T) {
	weeks := ParseIndex(loadIndexFixture(t))

	if len(weeks) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(weeks))
	}

	if len(weeks[0].Paths) != 2 {
		t.Errorf("week 1: expected 2 game paths, got %d", len(weeks[0].Paths))
	}
	if weeks[0].HasUnlinked {
		t.Error("week 1 should be fully played")
	}
	if weeks[0].Paths[0] != "/games/boxscore/dallas-cowboys-vs-philadelphia-eagles-2025090701" {
		t.Errorf("unexpected first path: %q", weeks[0].Paths[0])
	}

	if !weeks[2].HasUnlinked {
		t.Error("week 3 should have an unplayed game")
	}
	if len(weeks[2].Paths) != 1 {
		t.Errorf("week 3: expected 1 played game, got %d", len(weeks[2].Paths))
	}
}

func TestLastCompletedWeek(t *testing.T) {
	weeks := ParseIndex(loadIndexFixture(t))

	if got := LastCompletedWeek(weeks); got != 2 {
		t.Errorf("LastCompletedWeek = %d, expected 2", got)
	}

	// A fully played slate completes at its final week.
	complete := []Week{{Number: 1}, {Number: 2}}
	if got := LastCompletedWeek(complete); got != 2 {
		t.Errorf("LastCompletedWeek(complete) = %d, expected 2", got)
	}

	if got := LastCompletedWeek(nil); got != 0 {
		t.Errorf("LastCompletedWeek(nil) = %d, expected 0", got)
	}
}

func TestGameURLs(t *testing.T) {
	weeks := ParseIndex(loadIndexFixture(t))

	all := GameURLs(DefaultBaseURL, weeks, 1)
	if len(all) != 3 {
		t.Fatalf("expected 3 URLs through week 2, got %d", len(all))
	}
	if !strings.HasPrefix(all[0], DefaultBaseURL+"/games/boxscore/") {
		t.Errorf("URL not resolved against base: %q", all[0])
	}

	fromWeek2 := GameURLs(DefaultBaseURL, weeks, 2)
	if len(fromWeek2) != 1 {
		t.Errorf("expected 1 URL from week 2 on, got %d", len(fromWeek2))
	}
}
