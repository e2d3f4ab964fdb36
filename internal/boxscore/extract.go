package boxscore

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Segments is the structural extraction of one game page: ordered token lists
// per block, with no parsing semantics applied. Optional blocks that are
// absent produce shorter (or empty) lists rather than errors.
type Segments struct {
	// PageHeader is the ".divheader" text ("2023 NFL Scores - Week 14").
	PageHeader string

	// TitleLines are the lines of the game title block: optional round label,
	// "Away vs Home", date, stadium, optional attendance line.
	TitleLines []string

	// ScoreTokens is the line-split text of the scoreboard table.
	ScoreTokens []string

	// TeamStatRows are the team comparison rows: label, away value, home value.
	TeamStatRows []StatRow

	// PlayerTokens is the flat ordered token stream of the player-stats block.
	PlayerTokens []string
}

// StatRow is one row of the team comparison table.
type StatRow struct {
	Label string
	Away  string
	Home  string
}

// splitLines splits an element's rendered text into trimmed non-empty lines.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Extract pulls the four token streams out of a parsed game page.
func Extract(doc *goquery.Document) *Segments {
	seg := &Segments{}

	seg.PageHeader = strings.TrimSpace(doc.Find(".divheader").First().Text())

	// The second <center> element carries the game title block.
	centers := doc.Find("center")
	if centers.Length() > 1 {
		seg.TitleLines = splitLines(centers.Eq(1).Text())
	}

	if score := doc.Find(".statistics").First(); score.Length() > 0 {
		seg.ScoreTokens = splitLines(score.Text())
	}

	doc.Find("#divBox_team tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		seg.TeamStatRows = append(seg.TeamStatRows, StatRow{
			Label: strings.TrimSpace(cells.Eq(0).Text()),
			Away:  strings.TrimSpace(cells.Eq(1).Text()),
			Home:  strings.TrimSpace(cells.Eq(2).Text()),
		})
	})

	if stats := doc.Find("#divBox_stats").First(); stats.Length() > 0 {
		seg.PlayerTokens = splitLines(stats.Text())
	}

	return seg
}
