package boxscore

import (
	"strings"
	"time"
)

// playerMarker is the period + non-breaking space that follows a player's
// jersey position letter in each stat row ("D.Prescott QB. ...").
const playerMarker = ".\u00a0"

// ScanState is the player-stat scanner's mode. The scan is a single pass over
// the flat token stream; values bind to previously collected header names
// strictly positionally, so a missing header or stray token misaligns every
// later assignment in that player group. That fragility is inherited from the
// page layout and is left intact; callers validate records after the fact.
type ScanState int

const (
	// ScanIdle: no player active, not collecting headers.
	ScanIdle ScanState = iota
	// ScanHeaders: tokens are column names for the rows that follow.
	ScanHeaders
	// ScanValues: tokens are stat values for the current player.
	ScanValues
)

// PlayerScanner consumes the player-stat token stream one token at a time.
// Exposing Feed lets tests drive the machine token-by-token and assert the
// intermediate state.
type PlayerScanner struct {
	awayTeam string
	homeTeam string
	date     time.Time

	state   ScanState
	section Section
	team    string
	headers []string
	player  string
	cursor  int

	players map[string]*PlayerStats
}

// NewPlayerScanner builds a scanner for one game's stream.
func NewPlayerScanner(awayTeam, homeTeam string, date time.Time) *PlayerScanner {
	return &PlayerScanner{
		awayTeam: awayTeam,
		homeTeam: homeTeam,
		date:     date,
		players:  make(map[string]*PlayerStats),
	}
}

// State reports the scanner's current mode.
func (s *PlayerScanner) State() ScanState { return s.state }

// Section reports the active stat section.
func (s *PlayerScanner) Section() Section { return s.section }

// Headers returns the pending header-name list.
func (s *PlayerScanner) Headers() []string { return s.headers }

// Players returns the records accumulated so far.
func (s *PlayerScanner) Players() map[string]*PlayerStats { return s.players }

// Feed advances the machine by one token.
func (s *PlayerScanner) Feed(token string) {
	// Section headings set the active prefix and emit nothing themselves.
	if section, ok := sectionLabels[token]; ok {
		s.section = section
		return
	}

	// A token naming either team starts a header group for that side.
	if strings.Contains(token, s.awayTeam) || strings.Contains(token, s.homeTeam) {
		if strings.Contains(token, s.awayTeam) {
			s.team = s.awayTeam
		} else {
			s.team = s.homeTeam
		}
		s.state = ScanHeaders
		s.headers = nil
		return
	}

	// A player row: name is everything before the marker, minus the single
	// position letter that precedes it.
	if idx := strings.Index(token, playerMarker); idx > 0 {
		s.state = ScanValues
		s.player = token[:idx-1]
		if _, ok := s.players[s.player]; !ok {
			s.players[s.player] = &PlayerStats{
				Team:  s.team,
				Date:  s.date,
				Stats: make(map[string]string),
			}
		}
		s.cursor = 0
		return
	}

	// Layout artifacts between sections.
	if token == "TeamTeam" || token == "." {
		s.state = ScanIdle
		s.player = ""
		return
	}

	switch s.state {
	case ScanHeaders:
		s.headers = append(s.headers, s.section.Prefix()+"_"+strings.ToLower(token))
	case ScanValues:
		if s.player == "" {
			return
		}
		if s.cursor < len(s.headers) {
			s.players[s.player].Stats[s.headers[s.cursor]] = token
		}
		s.cursor++
	}
}

// ScanPlayerTokens runs the full token stream through a fresh scanner.
func ScanPlayerTokens(tokens []string, awayTeam, homeTeam string, date time.Time) map[string]*PlayerStats {
	s := NewPlayerScanner(awayTeam, homeTeam, date)
	for _, tok := range tokens {
		s.Feed(tok)
	}
	return s.players
}
