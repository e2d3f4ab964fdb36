package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fortuna/gridiron/internal/store"
)

// PlayerRepository handles player stat record data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// InsertTx inserts one player's game record inside a season transaction.
// The sparse stat map persists as JSONB since the attribute set varies by
// position.
func (r *PlayerRepository) InsertTx(ctx context.Context, tx *sql.Tx, stat *store.PlayerStat) error {
	stats, err := json.Marshal(stat.Stats)
	if err != nil {
		return fmt.Errorf("marshaling player stats: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO player_stat (game_id, team_id, name, date, stats)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING player_stat_id
	`, stat.GameID, stat.TeamID, stat.Name, stat.Date, stats).Scan(&stat.PlayerStatID)

	if err != nil {
		return fmt.Errorf("inserting player stat: %w", err)
	}
	return nil
}

// GetByNameAndDate returns a player's record for one game day.
func (r *PlayerRepository) GetByNameAndDate(ctx context.Context, name string, date time.Time) (*store.PlayerStat, error) {
	stat := &store.PlayerStat{}
	var raw []byte

	err := r.db.DB().QueryRowContext(ctx, `
		SELECT player_stat_id, game_id, team_id, name, date, stats
		FROM player_stat
		WHERE name = $1 AND date = $2
	`, name, date).Scan(&stat.PlayerStatID, &stat.GameID, &stat.TeamID, &stat.Name, &stat.Date, &raw)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player stat not found: %s on %s", name, date.Format("2006-01-02"))
	}
	if err != nil {
		return nil, fmt.Errorf("querying player stat: %w", err)
	}

	if err := json.Unmarshal(raw, &stat.Stats); err != nil {
		return nil, fmt.Errorf("decoding player stats: %w", err)
	}
	return stat, nil
}

// GetByGameID returns all player records for one game.
func (r *PlayerRepository) GetByGameID(ctx context.Context, gameID int) ([]*store.PlayerStat, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT player_stat_id, game_id, team_id, name, date, stats
		FROM player_stat
		WHERE game_id = $1
		ORDER BY name
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying player stats: %w", err)
	}
	defer rows.Close()

	var out []*store.PlayerStat
	for rows.Next() {
		stat := &store.PlayerStat{}
		var raw []byte
		if err := rows.Scan(&stat.PlayerStatID, &stat.GameID, &stat.TeamID, &stat.Name, &stat.Date, &raw); err != nil {
			return nil, fmt.Errorf("scanning player stat: %w", err)
		}
		if err := json.Unmarshal(raw, &stat.Stats); err != nil {
			return nil, fmt.Errorf("decoding player stats: %w", err)
		}
		out = append(out, stat)
	}
	return out, rows.Err()
}
