package store

import (
	"database/sql"
	"time"
)

// Team is a current franchise identity. Historical names resolve to one of
// these rows through the alias table before anything is persisted.
type Team struct {
	TeamID       int            `json:"team_id" db:"team_id"`
	Name         string         `json:"name" db:"name"`
	Abbreviation sql.NullString `json:"abbreviation,omitempty" db:"abbreviation"`
	StadiumID    sql.NullInt32  `json:"stadium_id,omitempty" db:"stadium_id"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// Stadium is a venue, lazily created on first encounter and enriched from
// its Wikipedia infobox.
type Stadium struct {
	StadiumID int            `json:"stadium_id" db:"stadium_id"`
	Name      string         `json:"name" db:"name"`
	City      sql.NullString `json:"city,omitempty" db:"city"`
	State     sql.NullString `json:"state,omitempty" db:"state"`
	Capacity  sql.NullInt32  `json:"capacity,omitempty" db:"capacity"`
	Elevation sql.NullInt32  `json:"elevation,omitempty" db:"elevation"`
	Latitude  sql.NullString `json:"latitude,omitempty" db:"latitude"`
	Longitude sql.NullString `json:"longitude,omitempty" db:"longitude"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// Game is the canonical fact row joining the two teams, their stat lines,
// and the venue. (date, home_team_id, away_team_id) is unique.
type Game struct {
	GameID     int           `json:"game_id" db:"game_id"`
	Date       time.Time     `json:"date" db:"date"`
	Week       sql.NullInt32 `json:"week,omitempty" db:"week"`
	GameType   int           `json:"game_type" db:"game_type"`
	HomeTeamID int           `json:"home_team_id" db:"home_team_id"`
	AwayTeamID int           `json:"away_team_id" db:"away_team_id"`
	StadiumID  sql.NullInt32 `json:"stadium_id,omitempty" db:"stadium_id"`
	Attendance sql.NullInt32 `json:"attendance,omitempty" db:"attendance"`
	Overtime   bool          `json:"overtime" db:"overtime"`

	// Names as printed on the page, preserved for the perspective split.
	AwayTeamName string `json:"away_team_name" db:"away_team_name"`
	HomeTeamName string `json:"home_team_name" db:"home_team_name"`
	StadiumName  string `json:"stadium_name" db:"stadium_name"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TeamStat is one team's stat line for one game. The metric columns are
// dynamic by design: the canonical column set lives in TeamStatColumns and
// values travel in the Stats map so the box-score parser, the store, and
// the feature pipeline all speak the same names. Absent keys persist as NULL.
type TeamStat struct {
	TeamStatID int  `json:"team_stat_id" db:"team_stat_id"`
	GameID     int  `json:"game_id" db:"game_id"`
	TeamID     int  `json:"team_id" db:"team_id"`
	IsHome     bool `json:"is_home" db:"is_home"`

	Stats map[string]float64 `json:"stats"`

	// Raw holds the page's stat rows as printed, keyed by normalized label
	// ("att-comp-int" → "22-14-1"). The feature pipeline's raw table export
	// reads these so its expansion stage sees real composite strings.
	Raw map[string]string `json:"raw_stats"`
}

// TeamStatColumns is the canonical ordered metric column set for team_stat.
// Order matters: the feature pipeline's raw table export lays columns out in
// this sequence.
var TeamStatColumns = []string{
	"score",
	"score_q1",
	"score_q2",
	"score_q3",
	"score_q4",
	"score_overtime",
	"first_downs",
	"first_downs_rush",
	"first_downs_pass",
	"first_downs_penalty",
	"total_net_yards",
	"rush_net_yards",
	"rush_plays",
	"rush_avg_gain",
	"pass_net_yards",
	"pass_gross_yards",
	"pass_attempts",
	"pass_completions",
	"pass_interceptions",
	"pass_avg_gain",
	"pass_sacked",
	"pass_sacked_yards_lost",
	"punts",
	"punts_avg",
	"had_blocked",
	"punt_returns",
	"punt_return_yards",
	"kickoff_returns",
	"kickoff_return_yards",
	"interception_returns",
	"interception_return_yards",
	"penalties",
	"penalty_yards",
	"fumbles",
	"fumbles_lost",
	"field_goals_made",
	"field_goals_attempted",
	"third_down_conversions",
	"third_down_attempts",
	"third_down_rate",
	"fourth_down_conversions",
	"fourth_down_attempts",
	"fourth_down_rate",
	"total_plays",
	"avg_gain",
	"time_of_possession",
}

// PlayerStat is one player's sparse stat record for one game, keyed by
// (name, date). The section-prefixed metrics are stored as JSONB since the
// attribute set varies by position.
type PlayerStat struct {
	PlayerStatID int       `json:"player_stat_id" db:"player_stat_id"`
	GameID       int       `json:"game_id" db:"game_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	Name         string    `json:"name" db:"name"`
	Date         time.Time `json:"date" db:"date"`

	Stats map[string]string `json:"stats"`
}
