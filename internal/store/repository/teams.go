package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/teams"
)

// TeamRepository handles team data access. Historical franchise names are
// resolved to their current identity through the alias table before lookup,
// so Baltimore Colts and Indianapolis Colts share one row.
type TeamRepository struct {
	db      *store.Database
	aliases *teams.Aliases

	mu    sync.Mutex
	cache map[string]*store.Team // keyed by current name
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database, aliases *teams.Aliases) *TeamRepository {
	return &TeamRepository{
		db:      db,
		aliases: aliases,
		cache:   make(map[string]*store.Team),
	}
}

// FindOrCreateByName resolves a printed team name through the alias table and
// returns the franchise row, creating it on first encounter. An unrecognized
// name returns UnknownEntityError rather than inserting garbage.
func (r *TeamRepository) FindOrCreateByName(ctx context.Context, name string) (*store.Team, error) {
	current, ok := r.aliases.Resolve(strings.TrimSpace(name))
	if !ok {
		return nil, &store.UnknownEntityError{Kind: "team", Name: name}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if team, ok := r.cache[current]; ok {
		return team, nil
	}

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT team_id, name, abbreviation, stadium_id, created_at
		FROM team
		WHERE name = $1
	`, current).Scan(&team.TeamID, &team.Name, &team.Abbreviation, &team.StadiumID, &team.CreatedAt)

	if err == sql.ErrNoRows {
		team, err = r.create(ctx, current)
		if err != nil {
			return nil, err
		}
		r.cache[current] = team
		return team, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	r.cache[current] = team
	return team, nil
}

func (r *TeamRepository) create(ctx context.Context, current string) (*store.Team, error) {
	abbr := sql.NullString{}
	if a := teams.Abbreviation(current); a != "" {
		abbr = sql.NullString{String: a, Valid: true}
	}

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, `
		INSERT INTO team (name, abbreviation)
		VALUES ($1, $2)
		RETURNING team_id, name, abbreviation, stadium_id, created_at
	`, current, abbr).Scan(&team.TeamID, &team.Name, &team.Abbreviation, &team.StadiumID, &team.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("creating team %s: %w", current, err)
	}
	return team, nil
}

// SetHomeStadium records a team's home venue the first time it is seen
// hosting a game. Later games never overwrite it.
func (r *TeamRepository) SetHomeStadium(ctx context.Context, teamID, stadiumID int) error {
	_, err := r.db.DB().ExecContext(ctx, `
		UPDATE team SET stadium_id = $1
		WHERE team_id = $2 AND stadium_id IS NULL
	`, stadiumID, teamID)
	if err != nil {
		return fmt.Errorf("setting home stadium: %w", err)
	}

	r.mu.Lock()
	for _, team := range r.cache {
		if team.TeamID == teamID && !team.StadiumID.Valid {
			team.StadiumID = sql.NullInt32{Int32: int32(stadiumID), Valid: true}
		}
	}
	r.mu.Unlock()
	return nil
}

// GetAll returns all franchises ordered by name.
func (r *TeamRepository) GetAll(ctx context.Context) ([]*store.Team, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT team_id, name, abbreviation, stadium_id, created_at
		FROM team
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var out []*store.Team
	for rows.Next() {
		team := &store.Team{}
		if err := rows.Scan(&team.TeamID, &team.Name, &team.Abbreviation, &team.StadiumID, &team.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		out = append(out, team)
	}
	return out, rows.Err()
}

// GetByID finds a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*store.Team, error) {
	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT team_id, name, abbreviation, stadium_id, created_at
		FROM team
		WHERE team_id = $1
	`, teamID).Scan(&team.TeamID, &team.Name, &team.Abbreviation, &team.StadiumID, &team.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}
	return team, nil
}
