package crawl

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// DefaultBaseURL is the site root all game paths are resolved against.
const DefaultBaseURL = "https://www.footballdb.com"

// IndexURL returns the season index page URL for a year.
func IndexURL(base string, year int) string {
	return fmt.Sprintf("%s/games/index.html?lg=NFL&yr=%d", base, year)
}

// Week is one week's block on the season index page.
type Week struct {
	Number int

	// Paths holds the relative game-page paths for played games.
	Paths []string

	// HasUnlinked is true when any game row carries no link, which marks
	// the game (and so the week) as not yet played.
	HasUnlinked bool
}

// ParseIndex reads the per-week game tables off a season index page. Each
// ".statistics" table is one week, in order.
func ParseIndex(doc *goquery.Document) []Week {
	var weeks []Week

	doc.Find(".statistics").Each(func(i int, table *goquery.Selection) {
		week := Week{Number: i + 1}

		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			link := row.Find("a").First()
			if link.Length() == 0 {
				week.HasUnlinked = true
				return
			}
			if href, ok := link.Attr("href"); ok && href != "" {
				week.Paths = append(week.Paths, href)
			} else {
				week.HasUnlinked = true
			}
		})

		weeks = append(weeks, week)
	})

	return weeks
}

// LastCompletedWeek returns the number of the last fully played week: the
// week before the first one containing an unplayed game. Zero means the
// season has not started.
func LastCompletedWeek(weeks []Week) int {
	for _, week := range weeks {
		if week.HasUnlinked {
			return week.Number - 1
		}
	}
	if len(weeks) == 0 {
		return 0
	}
	return weeks[len(weeks)-1].Number
}

// GameURLs flattens the played-game paths of weeks[startWeek-1:] into
// absolute URLs, stopping at the first incomplete week.
func GameURLs(base string, weeks []Week, startWeek int) []string {
	var urls []string
	for _, week := range weeks {
		if week.Number < startWeek {
			continue
		}
		if week.HasUnlinked {
			break
		}
		for _, path := range week.Paths {
			urls = append(urls, base+path)
		}
	}
	return urls
}
