// Package teams resolves historical franchise names to current identities.
// Franchises relocate and rename across the five decades the scraper covers;
// the alias table maps every historical name ("St. Louis Rams", "Oakland
// Raiders") to its current franchise so records accumulate under one identity.
package teams

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Aliases maps historical team names to current franchise names.
type Aliases struct {
	current map[string]string
}

// LoadAliases reads a CSV alias table with "Team,CurrentTeam" columns.
func LoadAliases(path string) (*Aliases, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening alias table: %w", err)
	}
	defer f.Close()

	return ParseAliases(f)
}

// ParseAliases parses the alias CSV from a reader.
func ParseAliases(r io.Reader) (*Aliases, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading alias table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("alias table is empty")
	}

	header := records[0]
	teamCol, currentCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Team":
			teamCol = i
		case "CurrentTeam":
			currentCol = i
		}
	}
	if teamCol < 0 || currentCol < 0 {
		return nil, fmt.Errorf("alias table missing Team/CurrentTeam columns")
	}

	aliases := &Aliases{current: make(map[string]string, len(records)-1)}
	for _, rec := range records[1:] {
		if len(rec) <= teamCol || len(rec) <= currentCol {
			continue
		}
		aliases.current[strings.TrimSpace(rec[teamCol])] = strings.TrimSpace(rec[currentCol])
	}

	return aliases, nil
}

// Resolve maps a historical name to the current franchise name. The second
// return is false for names the table does not know.
func (a *Aliases) Resolve(name string) (string, bool) {
	current, ok := a.current[name]
	return current, ok
}

// Names returns every historical name in the table.
func (a *Aliases) Names() []string {
	names := make([]string, 0, len(a.current))
	for name := range a.current {
		names = append(names, name)
	}
	return names
}

// CurrentNames returns the deduplicated set of current franchise names.
func (a *Aliases) CurrentNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, current := range a.current {
		if !seen[current] {
			seen[current] = true
			names = append(names, current)
		}
	}
	return names
}
