package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/gridiron/internal/store"
)

// GameRepository handles game data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// InsertTx inserts a game inside a season transaction and fills in its ID.
// A duplicate (date, home, away) surfaces as a unique violation so the
// caller can roll the season back.
func (r *GameRepository) InsertTx(ctx context.Context, tx *sql.Tx, game *store.Game) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO game (date, week, game_type, home_team_id, away_team_id,
			stadium_id, attendance, overtime, away_team_name, home_team_name, stadium_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING game_id, created_at
	`,
		game.Date, game.Week, game.GameType, game.HomeTeamID, game.AwayTeamID,
		game.StadiumID, game.Attendance, game.Overtime,
		game.AwayTeamName, game.HomeTeamName, game.StadiumName,
	).Scan(&game.GameID, &game.CreatedAt)

	if err != nil {
		return fmt.Errorf("inserting game: %w", err)
	}
	return nil
}

// GetByID finds a game by ID
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*store.Game, error) {
	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT game_id, date, week, game_type, home_team_id, away_team_id,
			stadium_id, attendance, overtime, away_team_name, home_team_name,
			stadium_name, created_at
		FROM game
		WHERE game_id = $1
	`, gameID).Scan(
		&game.GameID, &game.Date, &game.Week, &game.GameType,
		&game.HomeTeamID, &game.AwayTeamID, &game.StadiumID, &game.Attendance,
		&game.Overtime, &game.AwayTeamName, &game.HomeTeamName, &game.StadiumName,
		&game.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}
	return game, nil
}

// GetByDateRange returns games between two dates inclusive, ordered by date.
func (r *GameRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*store.Game, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT game_id, date, week, game_type, home_team_id, away_team_id,
			stadium_id, attendance, overtime, away_team_name, home_team_name,
			stadium_name, created_at
		FROM game
		WHERE date >= $1 AND date <= $2
		ORDER BY date, game_id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// GetLatest returns the most recently dated game, or nil if the table is
// empty. The checkpoint falls back to it when Redis has no cursor.
func (r *GameRepository) GetLatest(ctx context.Context) (*store.Game, error) {
	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT game_id, date, week, game_type, home_team_id, away_team_id,
			stadium_id, attendance, overtime, away_team_name, home_team_name,
			stadium_name, created_at
		FROM game
		ORDER BY date DESC, game_id DESC
		LIMIT 1
	`).Scan(
		&game.GameID, &game.Date, &game.Week, &game.GameType,
		&game.HomeTeamID, &game.AwayTeamID, &game.StadiumID, &game.Attendance,
		&game.Overtime, &game.AwayTeamName, &game.HomeTeamName, &game.StadiumName,
		&game.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest game: %w", err)
	}
	return game, nil
}

func (r *GameRepository) scanGames(rows *sql.Rows) ([]*store.Game, error) {
	var out []*store.Game
	for rows.Next() {
		game := &store.Game{}
		if err := rows.Scan(
			&game.GameID, &game.Date, &game.Week, &game.GameType,
			&game.HomeTeamID, &game.AwayTeamID, &game.StadiumID, &game.Attendance,
			&game.Overtime, &game.AwayTeamName, &game.HomeTeamName, &game.StadiumName,
			&game.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		out = append(out, game)
	}
	return out, rows.Err()
}
