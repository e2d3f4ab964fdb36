// Package venue enriches stadium records with structural metadata scraped
// from the stadium's Wikipedia infobox.
package venue

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/gridiron/internal/fetch"
)

const wikipediaBase = "https://en.wikipedia.org/wiki/"

// Info is the structural metadata parsed from an infobox.
type Info struct {
	City      string
	State     string
	Capacity  int
	Elevation int
	Latitude  string
	Longitude string
}

var numberPattern = regexp.MustCompile(`[\d,]+`)

// parseNumber extracts the first number (with optional thousands separators)
// from a text fragment.
func parseNumber(text string) (int, bool) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// PageURL builds the Wikipedia URL for a stadium name. The name is truncated
// at the first comma (city suffixes are not part of article titles) and
// Highmark Stadium needs its disambiguated article.
func PageURL(name string) string {
	if strings.Contains(name, "Highmark Stadium") {
		name = "Highmark_Stadium_(New_York)"
	}
	url := wikipediaBase + strings.ReplaceAll(name, " ", "_")
	if idx := strings.Index(url, ","); idx >= 0 {
		url = url[:idx]
	}
	return url
}

// Lookup fetches the stadium's Wikipedia page and parses its infobox.
func Lookup(ctx context.Context, fetcher fetch.Fetcher, name string) (*Info, error) {
	doc, err := fetcher.Fetch(ctx, PageURL(name))
	if err != nil {
		return nil, fmt.Errorf("fetching stadium page: %w", err)
	}
	return ParseInfobox(doc)
}

// ParseInfobox reads city/state, capacity, elevation, and coordinates from
// the first infobox on the page.
func ParseInfobox(doc *goquery.Document) (*Info, error) {
	infobox := doc.Find(".infobox").First()
	if infobox.Length() == 0 {
		return nil, fmt.Errorf("page has no infobox")
	}

	info := &Info{}

	infobox.Find("tr").Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th").First()
		if header.Length() == 0 {
			return
		}
		headerText := strings.TrimSpace(header.Text())
		cell := strings.TrimSpace(row.Find("td").First().Text())

		switch headerText {
		case "Location", "City":
			parts := strings.Split(cell, ", ")
			if len(parts) >= 2 {
				info.City = parts[0]
				// The state follows the last comma, before any footnote line.
				info.State = strings.SplitN(parts[len(parts)-1], "\n", 2)[0]
			}
		case "Elevation":
			firstLine := strings.SplitN(cell, "\n", 2)[0]
			if n, ok := parseNumber(firstLine); ok {
				info.Elevation = n
			}
		case "Capacity":
			firstLine := strings.SplitN(cell, "\n", 2)[0]
			if n, ok := parseNumber(firstLine); ok {
				info.Capacity = n
			}
		}
	})

	info.Latitude = strings.TrimSpace(infobox.Find(".latitude").First().Text())
	info.Longitude = strings.TrimSpace(infobox.Find(".longitude").First().Text())

	return info, nil
}
