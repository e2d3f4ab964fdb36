package venue

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const infoboxHTML = `<html><body>
<table class="infobox">
<tr><th>Location</th><td>Orchard Park, New York
Coordinates here</td></tr>
<tr><th>Capacity</th><td>71,608
(previously 80,290)</td></tr>
<tr><th>Elevation</th><td>600 ft (183 m)</td></tr>
<tr><td><span class="latitude">42°46′26″N</span><span class="longitude">78°47′13″W</span></td></tr>
</table>
</body></html>`

func TestParseInfobox(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(infoboxHTML))
	if err != nil {
		t.Fatal(err)
	}

	info, err := ParseInfobox(doc)
	if err != nil {
		t.Fatalf("ParseInfobox failed: %v", err)
	}

	if info.City != "Orchard Park" {
		t.Errorf("expected city Orchard Park, got %q", info.City)
	}
	if info.State != "New York" {
		t.Errorf("expected state New York, got %q", info.State)
	}
	if info.Capacity != 71608 {
		t.Errorf("expected capacity 71608, got %d", info.Capacity)
	}
	if info.Elevation != 600 {
		t.Errorf("expected elevation 600, got %d", info.Elevation)
	}
	if info.Latitude == "" || info.Longitude == "" {
		t.Error("expected coordinates to be populated")
	}
}

func TestParseInfoboxMissing(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseInfobox(doc); err == nil {
		t.Error("expected error for page without infobox")
	}
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Lambeau Field", "https://en.wikipedia.org/wiki/Lambeau_Field"},
		{"Lincoln Financial Field, Philadelphia", "https://en.wikipedia.org/wiki/Lincoln_Financial_Field"},
		{"Highmark Stadium", "https://en.wikipedia.org/wiki/Highmark_Stadium_(New_York)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageURL(tt.name); got != tt.expected {
				t.Errorf("PageURL(%q) = %q, expected %q", tt.name, got, tt.expected)
			}
		})
	}
}
