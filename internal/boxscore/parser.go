package boxscore

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const teamSeparator = " vs "

var weekPattern = regexp.MustCompile(`Week (\d+)`)

// ParseGame turns the extracted segments of one game page into a typed Game.
// The parser assumes structurally well-formed pages; blocks it cannot locate
// at all surface as MalformedPageError, but within a block the positional
// semantics are trusted and drift produces partial records for the caller to
// validate.
func ParseGame(url string, seg *Segments) (*Game, error) {
	if len(seg.TitleLines) < 3 {
		return nil, &MalformedPageError{URL: url, Block: "title"}
	}

	game := &Game{
		URL:     url,
		Away:    make(TeamStats),
		Home:    make(TeamStats),
		AwayRaw: make(map[string]string),
		HomeRaw: make(map[string]string),
		Players: make(map[string]*PlayerStats),
	}

	if m := weekPattern.FindStringSubmatch(seg.PageHeader); m != nil {
		game.Week, _ = strconv.Atoi(m[1])
	}

	// Postseason pages carry an extra round-label line ahead of the team
	// line, shifting every subsequent offset by one.
	offset := 0
	game.Type = RegularSeason
	if containsAny(seg.TitleLines[0], postseasonMarkers) {
		for _, round := range roundLabels {
			if strings.Contains(seg.TitleLines[0], round.Label) {
				game.Type = round.Type
				offset = 1
				break
			}
		}
	}

	if len(seg.TitleLines) < 3+offset {
		return nil, &MalformedPageError{URL: url, Block: "title"}
	}

	teamLine := seg.TitleLines[offset]
	sep := strings.Index(teamLine, teamSeparator)
	if sep < 0 {
		return nil, &MalformedPageError{URL: url, Block: "teams"}
	}
	game.AwayTeam = teamLine[:sep]
	game.HomeTeam = teamLine[sep+len(teamSeparator):]

	date, err := time.Parse("January 2, 2006", seg.TitleLines[1+offset])
	if err != nil {
		return nil, &MalformedPageError{URL: url, Block: "date"}
	}
	game.Date = date
	game.Stadium = seg.TitleLines[2+offset]

	// Attendance is optional; when present the line reads "Attendance: N,NNN".
	for _, line := range seg.TitleLines {
		if strings.Contains(line, "Attendance") && len(line) > 12 {
			if n, err := strconv.Atoi(strings.ReplaceAll(line[12:], ",", "")); err == nil {
				game.Attendance = n
				game.HasAttendance = true
			}
			break
		}
	}

	if err := parseScores(url, seg.ScoreTokens, game); err != nil {
		return nil, err
	}

	for _, row := range seg.TeamStatRows {
		label := NormalizeLabel(row.Label)
		game.AwayRaw[label] = row.Away
		game.HomeRaw[label] = row.Home
		ExpandAssign(label, row.Away, row.Home, game.Away, game.Home)
	}

	game.Players = ScanPlayerTokens(seg.PlayerTokens, game.AwayTeam, game.HomeTeam, game.Date)

	return game, nil
}

// parseScores reads the per-quarter and final scores from the scoreboard
// token stream. Token index 4 holds the literal "5" exactly when a fifth
// scoring column (overtime) exists; all positions derive from a single base
// offset that the extra column shifts by one, plus the wider quarter span.
func parseScores(url string, tokens []string, game *Game) error {
	if len(tokens) < 5 {
		return &MalformedPageError{URL: url, Block: "scores"}
	}

	game.Overtime = tokens[4] == "5"

	base, quarters := 6, 4
	if game.Overtime {
		base, quarters = 7, 5
	}

	awayFinal := base + quarters
	homeStart := base + quarters + 2
	homeFinal := base + 2*quarters + 2

	if len(tokens) <= homeFinal {
		return &MalformedPageError{URL: url, Block: "scores"}
	}

	for i := 0; i < quarters; i++ {
		q := "score_q" + strconv.Itoa(i+1)
		game.AwayRaw[q] = strings.TrimSpace(tokens[base+i])
		game.HomeRaw[q] = strings.TrimSpace(tokens[homeStart+i])
		game.Away[scoreQuarterCol(i+1)] = parseScoreToken(tokens[base+i])
		game.Home[scoreQuarterCol(i+1)] = parseScoreToken(tokens[homeStart+i])
	}
	if !game.Overtime {
		// Synthetic fifth-quarter score keeps the schema uniform.
		game.AwayRaw["score_q5"] = "0"
		game.HomeRaw["score_q5"] = "0"
		game.Away[scoreQuarterCol(5)] = 0
		game.Home[scoreQuarterCol(5)] = 0
	}

	game.AwayRaw["score"] = strings.TrimSpace(tokens[awayFinal])
	game.HomeRaw["score"] = strings.TrimSpace(tokens[homeFinal])
	game.Away["score"] = parseScoreToken(tokens[awayFinal])
	game.Home["score"] = parseScoreToken(tokens[homeFinal])

	return nil
}

func scoreQuarterCol(q int) string {
	return CanonicalName("score_q" + strconv.Itoa(q))
}

func parseScoreToken(tok string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	return f
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
