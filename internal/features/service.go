package features

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fortuna/gridiron/internal/store/repository"
	"github.com/fortuna/gridiron/internal/teams"
)

// Service exports the persisted game table as the pipeline's raw file and
// runs the transformation stages over it.
type Service struct {
	stats    *repository.StatRepository
	aliases  *teams.Aliases
	pipeline *Pipeline
}

// NewService creates a feature pipeline service writing stage files to dir.
func NewService(stats *repository.StatRepository, aliases *teams.Aliases, dir string) *Service {
	return &Service{
		stats:   stats,
		aliases: aliases,
		pipeline: &Pipeline{
			Dir:     dir,
			Resolve: aliases.Resolve,
		},
	}
}

// Export writes the raw team-stat table from the store to team_stats.csv.
// Games come back ordered by date, which fixes the row indices the stagger
// stage links on.
func (s *Service) Export(ctx context.Context) error {
	lines, err := s.stats.LoadAllGames(ctx)
	if err != nil {
		return fmt.Errorf("loading games: %w", err)
	}

	games := make([]RawGame, len(lines))
	for i, line := range lines {
		games[i] = RawGame{Game: line.Game, AwayRaw: line.Away.Raw, HomeRaw: line.Home.Raw}
	}

	t := BuildRawTable(games)
	path := filepath.Join(s.pipeline.Dir, RawFile)
	if err := t.WriteFile(path); err != nil {
		return err
	}

	log.Printf("[features] ✓ Exported %d games -> %s", len(games), RawFile)
	return nil
}

// RunAll exports the raw table and runs every stage in order.
func (s *Service) RunAll(ctx context.Context) error {
	if err := s.Export(ctx); err != nil {
		return err
	}
	return s.pipeline.RunAll()
}

// RunStage runs a single named stage over the existing stage files. The
// expand stage re-exports the raw table first so it never reads a stale one.
func (s *Service) RunStage(ctx context.Context, name string) error {
	stage, err := ParseStage(name)
	if err != nil {
		return err
	}

	if stage == StageExpand {
		if err := s.Export(ctx); err != nil {
			return err
		}
	}
	return s.pipeline.RunStage(stage)
}
