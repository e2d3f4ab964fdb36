package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fortuna/gridiron/internal/store"
)

// StatRepository handles team stat line data access
type StatRepository struct {
	db *store.Database
}

// NewStatRepository creates a new stat repository
func NewStatRepository(db *store.Database) *StatRepository {
	return &StatRepository{db: db}
}

// insertStatQuery is built once from the canonical column set so the INSERT
// stays in lockstep with the schema.
var insertStatQuery = func() string {
	cols := []string{"game_id", "team_id", "is_home"}
	cols = append(cols, store.TeamStatColumns...)
	cols = append(cols, "raw_stats")

	params := make([]string, len(cols))
	for i := range cols {
		params[i] = "$" + strconv.Itoa(i+1)
	}

	return fmt.Sprintf(
		"INSERT INTO team_stat (%s) VALUES (%s) RETURNING team_stat_id",
		strings.Join(quoteAll(cols), ", "), strings.Join(params, ", "),
	)
}()

func quoteAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = `"` + c + `"`
	}
	return out
}

// InsertTx inserts one team's stat line inside a season transaction. Metrics
// absent from the Stats map persist as NULL.
func (r *StatRepository) InsertTx(ctx context.Context, tx *sql.Tx, stat *store.TeamStat) error {
	raw, err := json.Marshal(stat.Raw)
	if err != nil {
		return fmt.Errorf("marshaling raw stats: %w", err)
	}

	args := make([]interface{}, 0, len(store.TeamStatColumns)+4)
	args = append(args, stat.GameID, stat.TeamID, stat.IsHome)
	for _, col := range store.TeamStatColumns {
		if v, ok := stat.Stats[col]; ok {
			args = append(args, v)
		} else {
			args = append(args, nil)
		}
	}
	args = append(args, raw)

	if err := tx.QueryRowContext(ctx, insertStatQuery, args...).Scan(&stat.TeamStatID); err != nil {
		return fmt.Errorf("inserting team stat: %w", err)
	}
	return nil
}

// GameStatLine is one game's pair of stat lines joined with the game row,
// the shape the feature pipeline's raw table is exported from.
type GameStatLine struct {
	Game *store.Game
	Away *store.TeamStat
	Home *store.TeamStat
}

// LoadAllGames returns every game with both stat lines, ordered by date then
// ID so the export is deterministic.
func (r *StatRepository) LoadAllGames(ctx context.Context) ([]*GameStatLine, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT g.game_id, g.date, g.week, g.game_type, g.home_team_id, g.away_team_id,
			g.stadium_id, g.attendance, g.overtime, g.away_team_name, g.home_team_name,
			g.stadium_name, g.created_at,
			a.team_stat_id, a.raw_stats,
			h.team_stat_id, h.raw_stats
		FROM game g
		JOIN team_stat a ON a.game_id = g.game_id AND a.is_home = FALSE
		JOIN team_stat h ON h.game_id = g.game_id AND h.is_home = TRUE
		ORDER BY g.date, g.game_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying game stat lines: %w", err)
	}
	defer rows.Close()

	var out []*GameStatLine
	for rows.Next() {
		game := &store.Game{}
		away := &store.TeamStat{IsHome: false}
		home := &store.TeamStat{IsHome: true}
		var awayRaw, homeRaw []byte

		if err := rows.Scan(
			&game.GameID, &game.Date, &game.Week, &game.GameType,
			&game.HomeTeamID, &game.AwayTeamID, &game.StadiumID, &game.Attendance,
			&game.Overtime, &game.AwayTeamName, &game.HomeTeamName, &game.StadiumName,
			&game.CreatedAt,
			&away.TeamStatID, &awayRaw,
			&home.TeamStatID, &homeRaw,
		); err != nil {
			return nil, fmt.Errorf("scanning game stat line: %w", err)
		}

		if err := json.Unmarshal(awayRaw, &away.Raw); err != nil {
			return nil, fmt.Errorf("decoding raw stats for game %d: %w", game.GameID, err)
		}
		if err := json.Unmarshal(homeRaw, &home.Raw); err != nil {
			return nil, fmt.Errorf("decoding raw stats for game %d: %w", game.GameID, err)
		}

		away.GameID, away.TeamID = game.GameID, game.AwayTeamID
		home.GameID, home.TeamID = game.GameID, game.HomeTeamID
		out = append(out, &GameStatLine{Game: game, Away: away, Home: home})
	}
	return out, rows.Err()
}

// GetByGameID returns the pair of canonical numeric stat lines for one game.
func (r *StatRepository) GetByGameID(ctx context.Context, gameID int) ([]*store.TeamStat, error) {
	query := fmt.Sprintf(`
		SELECT team_stat_id, game_id, team_id, is_home, %s
		FROM team_stat
		WHERE game_id = $1
		ORDER BY is_home
	`, strings.Join(quoteAll(store.TeamStatColumns), ", "))

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying team stats: %w", err)
	}
	defer rows.Close()

	var out []*store.TeamStat
	for rows.Next() {
		stat := &store.TeamStat{Stats: make(map[string]float64)}
		vals := make([]sql.NullFloat64, len(store.TeamStatColumns))

		dest := []interface{}{&stat.TeamStatID, &stat.GameID, &stat.TeamID, &stat.IsHome}
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning team stat: %w", err)
		}

		for i, col := range store.TeamStatColumns {
			if vals[i].Valid {
				stat.Stats[col] = vals[i].Float64
			}
		}
		out = append(out, stat)
	}
	return out, rows.Err()
}
