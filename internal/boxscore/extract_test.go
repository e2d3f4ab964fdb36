package boxscore

import (
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func loadFixture(t *testing.T, name string) *Segments {
	t.Helper()

	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	return Extract(doc)
}

func TestExtractSegments(t *testing.T) {
	seg := loadFixture(t, "boxscore_regular.html")

	if !strings.Contains(seg.PageHeader, "Week 14") {
		t.Errorf("page header missing week: %q", seg.PageHeader)
	}

	if len(seg.TitleLines) != 4 {
		t.Fatalf("expected 4 title lines, got %v", seg.TitleLines)
	}
	if seg.TitleLines[0] != "Dallas Cowboys vs Philadelphia Eagles" {
		t.Errorf("unexpected team line: %q", seg.TitleLines[0])
	}

	if len(seg.ScoreTokens) != 17 {
		t.Fatalf("expected 17 score tokens, got %d: %v", len(seg.ScoreTokens), seg.ScoreTokens)
	}
	if seg.ScoreTokens[4] != "F" {
		t.Errorf("expected final-column token at index 4, got %q", seg.ScoreTokens[4])
	}

	if len(seg.TeamStatRows) != 6 {
		t.Fatalf("expected 6 team-stat rows, got %d", len(seg.TeamStatRows))
	}
	first := seg.TeamStatRows[0]
	if first.Label != "First Downs" || first.Away != "22" || first.Home != "19" {
		t.Errorf("unexpected first stat row: %+v", first)
	}

	if len(seg.PlayerTokens) == 0 {
		t.Fatal("expected player tokens")
	}
	if seg.PlayerTokens[0] != "Passing" {
		t.Errorf("expected Passing section first, got %q", seg.PlayerTokens[0])
	}
}

func TestExtractToleratesMissingBlocks(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>nothing</p></body></html>"))
	if err != nil {
		t.Fatal(err)
	}

	seg := Extract(doc)
	if len(seg.TitleLines) != 0 || len(seg.ScoreTokens) != 0 ||
		len(seg.TeamStatRows) != 0 || len(seg.PlayerTokens) != 0 {
		t.Errorf("missing blocks should yield empty lists, got %+v", seg)
	}
}
