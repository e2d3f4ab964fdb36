package boxscore

import "time"

// GameType classifies a game by postseason round. Regular-season games are the
// zero value; the numeric order matches the round order in the playoffs.
type GameType int

const (
	RegularSeason GameType = iota
	WildCard
	Divisional
	Conference
	SuperBowl
)

func (t GameType) String() string {
	switch t {
	case WildCard:
		return "wild_card"
	case Divisional:
		return "divisional"
	case Conference:
		return "conference"
	case SuperBowl:
		return "super_bowl"
	default:
		return "regular_season"
	}
}

// postseasonMarkers are the substrings that identify a playoff title line.
var postseasonMarkers = []string{"AFC", "NFC", "Super Bowl"}

// roundLabels maps title-line substrings to rounds. Ordered: matching stops at
// the first hit, so "Wild Card" must be checked before the bare conference
// labels would ever match.
var roundLabels = []struct {
	Label string
	Type  GameType
}{
	{"Wild Card", WildCard},
	{"Divisional", Divisional},
	{"Conference", Conference},
	{"Super Bowl", SuperBowl},
}

// Section identifies a player-stat section of the box score.
type Section int

const (
	SectionNone Section = iota
	SectionPassing
	SectionRushing
	SectionReceiving
	SectionKickoffReturns
	SectionPuntReturns
	SectionPunting
	SectionKicking
	SectionKickoffs
	SectionDefense
	SectionFumbles
)

// Prefix returns the column-name prefix for stats in this section.
func (s Section) Prefix() string {
	switch s {
	case SectionPassing:
		return "pass"
	case SectionRushing:
		return "rush"
	case SectionReceiving:
		return "rec"
	case SectionKickoffReturns:
		return "kick_ret"
	case SectionPuntReturns:
		return "punt_ret"
	case SectionPunting:
		return "punt"
	case SectionKicking:
		return "kick"
	case SectionKickoffs:
		return "kickoff"
	case SectionDefense:
		return "def"
	case SectionFumbles:
		return "fum"
	default:
		return ""
	}
}

// sectionLabels maps the literal section headings on the page to sections.
var sectionLabels = map[string]Section{
	"Passing":         SectionPassing,
	"Rushing":         SectionRushing,
	"Receiving":       SectionReceiving,
	"Kickoff Returns": SectionKickoffReturns,
	"Punt Returns":    SectionPuntReturns,
	"Punting":         SectionPunting,
	"Kicking":         SectionKicking,
	"Kickoffs":        SectionKickoffs,
	"Defense":         SectionDefense,
	"Fumbles":         SectionFumbles,
}

// TeamStats holds one team's normalized box-score metrics for a single game,
// keyed by canonical column name. Composite source fields ("14-22-1") are
// already expanded by the time values land here.
type TeamStats map[string]float64

// PlayerStats is the sparse per-player record: section-prefixed stat name to
// raw value, plus the identity fields set when the player is first seen.
type PlayerStats struct {
	Team  string
	Date  time.Time
	Stats map[string]string
}

// Game is the fully parsed box score for one game.
type Game struct {
	URL      string
	Week     int
	Type     GameType
	AwayTeam string
	HomeTeam string
	Date     time.Time
	Stadium  string

	// Attendance is unknown for some historical games.
	Attendance    int
	HasAttendance bool

	Overtime bool
	Away     TeamStats
	Home     TeamStats

	// AwayRaw and HomeRaw preserve the stat rows as printed, keyed by
	// normalized label, composites intact ("att-comp-int" → "22-14-1").
	AwayRaw map[string]string
	HomeRaw map[string]string

	// Players is keyed by player name as printed on the page.
	Players map[string]*PlayerStats
}
