package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/fortuna/gridiron/internal/fetch"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/venue"
)

// StadiumRepository handles stadium data access. Venues are created lazily
// the first time a box score names them, enriched from their Wikipedia
// infobox when the lookup succeeds.
type StadiumRepository struct {
	db      *store.Database
	fetcher fetch.Fetcher

	mu    sync.Mutex
	cache map[string]*store.Stadium // keyed by normalized name
}

// NewStadiumRepository creates a new stadium repository. The fetcher is used
// for Wikipedia enrichment and may be nil to disable it.
func NewStadiumRepository(db *store.Database, fetcher fetch.Fetcher) *StadiumRepository {
	return &StadiumRepository{
		db:      db,
		fetcher: fetcher,
		cache:   make(map[string]*store.Stadium),
	}
}

// normalizeName truncates trailing comma qualifiers ("Wembley Stadium,
// London") and lowercases so one venue maps to one row.
func normalizeName(name string) string {
	if idx := strings.Index(name, ","); idx >= 0 {
		name = name[:idx]
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// FindOrCreateByName returns the venue row for a printed stadium name,
// creating and enriching it on first encounter.
func (r *StadiumRepository) FindOrCreateByName(ctx context.Context, name string) (*store.Stadium, error) {
	key := normalizeName(name)
	if key == "" {
		return nil, &store.UnknownEntityError{Kind: "stadium", Name: name}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if stadium, ok := r.cache[key]; ok {
		return stadium, nil
	}

	stadium := &store.Stadium{}
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT stadium_id, name, city, state, capacity, elevation, latitude, longitude, created_at
		FROM stadium
		WHERE name = $1
	`, key).Scan(
		&stadium.StadiumID, &stadium.Name, &stadium.City, &stadium.State,
		&stadium.Capacity, &stadium.Elevation, &stadium.Latitude, &stadium.Longitude,
		&stadium.CreatedAt,
	)

	if err == sql.ErrNoRows {
		stadium, err = r.create(ctx, key, name)
		if err != nil {
			return nil, err
		}
		r.cache[key] = stadium
		return stadium, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying stadium: %w", err)
	}

	r.cache[key] = stadium
	return stadium, nil
}

func (r *StadiumRepository) create(ctx context.Context, key, printed string) (*store.Stadium, error) {
	var city, state, lat, lon sql.NullString
	var capacity, elevation sql.NullInt32

	// Enrichment is best effort. A dead Wikipedia page still gets a bare row.
	if r.fetcher != nil {
		info, err := venue.Lookup(ctx, r.fetcher, printed)
		if err != nil {
			log.Printf("[stadiums] ⊘ No infobox for %s: %v", printed, err)
		} else {
			if info.City != "" {
				city = sql.NullString{String: info.City, Valid: true}
			}
			if info.State != "" {
				state = sql.NullString{String: info.State, Valid: true}
			}
			if info.Capacity > 0 {
				capacity = sql.NullInt32{Int32: int32(info.Capacity), Valid: true}
			}
			if info.Elevation > 0 {
				elevation = sql.NullInt32{Int32: int32(info.Elevation), Valid: true}
			}
			if info.Latitude != "" {
				lat = sql.NullString{String: info.Latitude, Valid: true}
			}
			if info.Longitude != "" {
				lon = sql.NullString{String: info.Longitude, Valid: true}
			}
		}
	}

	stadium := &store.Stadium{}
	err := r.db.DB().QueryRowContext(ctx, `
		INSERT INTO stadium (name, city, state, capacity, elevation, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING stadium_id, name, city, state, capacity, elevation, latitude, longitude, created_at
	`, key, city, state, capacity, elevation, lat, lon).Scan(
		&stadium.StadiumID, &stadium.Name, &stadium.City, &stadium.State,
		&stadium.Capacity, &stadium.Elevation, &stadium.Latitude, &stadium.Longitude,
		&stadium.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating stadium %s: %w", key, err)
	}

	log.Printf("[stadiums] ✓ Created %s", key)
	return stadium, nil
}

// GetAll returns all venues ordered by name.
func (r *StadiumRepository) GetAll(ctx context.Context) ([]*store.Stadium, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT stadium_id, name, city, state, capacity, elevation, latitude, longitude, created_at
		FROM stadium
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying stadiums: %w", err)
	}
	defer rows.Close()

	var out []*store.Stadium
	for rows.Next() {
		stadium := &store.Stadium{}
		if err := rows.Scan(
			&stadium.StadiumID, &stadium.Name, &stadium.City, &stadium.State,
			&stadium.Capacity, &stadium.Elevation, &stadium.Latitude, &stadium.Longitude,
			&stadium.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning stadium: %w", err)
		}
		out = append(out, stadium)
	}
	return out, rows.Err()
}
