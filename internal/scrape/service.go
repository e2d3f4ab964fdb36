package scrape

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/fortuna/gridiron/internal/boxscore"
	"github.com/fortuna/gridiron/internal/checkpoint"
	"github.com/fortuna/gridiron/internal/crawl"
	"github.com/fortuna/gridiron/internal/fetch"
	"github.com/fortuna/gridiron/internal/publisher"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// ErrAlreadyRunning is returned when a scrape run is requested while one is
// in flight.
var ErrAlreadyRunning = errors.New("a scrape run is already in progress")

// Deps carries the service's collaborators. Checkpoints, Publisher and
// Reporter are optional.
type Deps struct {
	Driver      *crawl.Driver
	Fetcher     fetch.Fetcher
	DB          *store.Database
	Teams       *repository.TeamRepository
	Stadiums    *repository.StadiumRepository
	Games       *repository.GameRepository
	Stats       *repository.StatRepository
	Players     *repository.PlayerRepository
	Checkpoints *checkpoint.Store
	Publisher   *publisher.RedisStreamPublisher
	Reporter    Reporter
}

// Service orchestrates full and incremental scrape runs: crawl the season
// index, fetch and parse game pages on the bounded pool, resolve entities,
// and persist each season inside one transaction.
type Service struct {
	deps Deps

	mu      sync.Mutex
	running bool
	run     *Run
}

// NewService creates a scrape service.
func NewService(deps Deps) *Service {
	return &Service{deps: deps, run: &Run{Status: RunStatusIdle}}
}

// SeasonOf maps a game date to its NFL season: January through June games
// belong to the prior fall's season.
func SeasonOf(date time.Time) int {
	if date.Month() <= time.June {
		return date.Year() - 1
	}
	return date.Year()
}

// CurrentSeason returns the season in progress (or most recently completed).
func CurrentSeason() int {
	return SeasonOf(time.Now())
}

// Status returns a copy of the current run state.
func (s *Service) Status() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run.Copy()
}

// ScrapeAll backfills every season from FirstSeason through the current one.
func (s *Service) ScrapeAll(ctx context.Context) error {
	return s.runScrape(ctx, ModeAll, FirstSeason, 1)
}

// ScrapeRecent resumes from the checkpoint, starting at the week after the
// last fully scraped one. With no checkpoint it falls back to the latest
// persisted game, and with an empty database to a full backfill.
func (s *Service) ScrapeRecent(ctx context.Context) error {
	year, week, ok, err := s.latestCheckpoint(ctx)
	if err != nil {
		return err
	}
	if !ok {
		log.Println("[scrape] No checkpoint found, starting full backfill")
		return s.runScrape(ctx, ModeRecent, FirstSeason, 1)
	}
	return s.runScrape(ctx, ModeRecent, year, week+1)
}

func (s *Service) latestCheckpoint(ctx context.Context) (year, week int, ok bool, err error) {
	if s.deps.Checkpoints != nil {
		year, week, ok, err = s.deps.Checkpoints.Latest(ctx)
		if err != nil {
			return 0, 0, false, fmt.Errorf("reading checkpoint: %w", err)
		}
		if ok {
			return year, week, true, nil
		}
	}

	game, err := s.deps.Games.GetLatest(ctx)
	if err != nil {
		return 0, 0, false, err
	}
	if game == nil {
		return 0, 0, false, nil
	}

	week = 1
	if game.Week.Valid {
		week = int(game.Week.Int32)
	}
	return SeasonOf(game.Date), week, true, nil
}

func (s *Service) runScrape(ctx context.Context, mode Mode, startYear, startWeek int) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.run = &Run{Mode: mode, Status: RunStatusRunning, StartedAt: time.Now()}
	s.mu.Unlock()

	err := s.scrape(ctx, mode, startYear, startWeek)

	s.mu.Lock()
	s.running = false
	s.run.CompletedAt = time.Now()
	if err != nil {
		s.run.Status = RunStatusFailed
		s.run.LastError = err.Error()
	} else {
		s.run.Status = RunStatusCompleted
	}
	s.mu.Unlock()

	if reporter := s.deps.Reporter; reporter != nil {
		if err != nil {
			reporter.OnRunError(err)
		} else {
			reporter.OnRunComplete()
		}
	}
	return err
}

func (s *Service) scrape(ctx context.Context, mode Mode, startYear, startWeek int) error {
	endYear := CurrentSeason()
	log.Printf("[scrape] Starting %s run: seasons %d-%d", mode, startYear, endYear)

	if reporter := s.deps.Reporter; reporter != nil {
		reporter.OnRunStart(mode, startYear)
	}

	for year := startYear; year <= endYear; year++ {
		week := 1
		if year == startYear {
			week = startWeek
		}

		s.mu.Lock()
		s.run.CurrentYear = year
		s.mu.Unlock()

		if err := s.scrapeSeason(ctx, year, week); err != nil {
			return fmt.Errorf("season %d: %w", year, err)
		}

		s.mu.Lock()
		s.run.SeasonsDone++
		s.mu.Unlock()
	}

	log.Println("[scrape] ✓ Run complete")
	return nil
}

func (s *Service) scrapeSeason(ctx context.Context, year, startWeek int) error {
	weeks, err := s.deps.Driver.Season(ctx, year)
	if err != nil {
		return err
	}

	lastWeek := crawl.LastCompletedWeek(weeks)
	urls := crawl.GameURLs(s.deps.Driver.Base(), weeks, startWeek)
	if len(urls) == 0 {
		log.Printf("[scrape] ⊘ Season %d: nothing to scrape from week %d", year, startWeek)
		return nil
	}

	log.Printf("[scrape] Season %d: %d games from week %d", year, len(urls), startWeek)
	if reporter := s.deps.Reporter; reporter != nil {
		reporter.OnSeasonStart(year, len(urls))
	}

	var (
		mu      sync.Mutex
		parsed  []*boxscore.Game
		skipped int
		done    int
	)

	err = s.deps.Driver.ForEachGame(ctx, urls, func(ctx context.Context, url string) error {
		game, err := s.fetchGame(ctx, url)

		var malformed *boxscore.MalformedPageError
		if errors.As(err, &malformed) {
			log.Printf("[scrape] ⊘ Skipping %s: malformed %s block", url, malformed.Block)
			mu.Lock()
			skipped++
			mu.Unlock()
			return nil
		}
		if err != nil {
			return err
		}

		mu.Lock()
		parsed = append(parsed, game)
		done++
		current := done
		mu.Unlock()

		if reporter := s.deps.Reporter; reporter != nil {
			reporter.OnGameScraped(url, current, len(urls))
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Deterministic insert order regardless of fetch completion order.
	sort.Slice(parsed, func(i, j int) bool {
		if !parsed[i].Date.Equal(parsed[j].Date) {
			return parsed[i].Date.Before(parsed[j].Date)
		}
		return parsed[i].URL < parsed[j].URL
	})

	s.mu.Lock()
	s.run.GamesSkipped += skipped
	s.mu.Unlock()

	if err := s.persistSeason(ctx, year, lastWeek, parsed, skipped); err != nil {
		return err
	}

	if reporter := s.deps.Reporter; reporter != nil {
		reporter.OnSeasonComplete(year, len(parsed), skipped)
	}
	return nil
}

func (s *Service) fetchGame(ctx context.Context, url string) (*boxscore.Game, error) {
	doc, err := s.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return boxscore.ParseGame(url, boxscore.Extract(doc))
}

// persistSeason writes one season's games inside a single transaction. A
// unique violation means the season (or part of it) was already persisted;
// the transaction rolls back and the run moves on.
func (s *Service) persistSeason(ctx context.Context, year, lastWeek int, parsed []*boxscore.Game, skipped int) error {
	if len(parsed) == 0 {
		return nil
	}

	tx, err := s.deps.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning season transaction: %w", err)
	}

	var events []publisher.GameEvent
	for _, game := range parsed {
		event, err := s.persistGame(ctx, tx, game)
		if err != nil {
			tx.Rollback()
			if store.IsUniqueViolation(err) {
				log.Printf("[scrape] ⊘ Season %d already persisted, rolling back", year)
				return nil
			}
			return err
		}
		events = append(events, event)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing season %d: %w", year, err)
	}

	s.mu.Lock()
	s.run.GamesScraped += len(parsed)
	s.mu.Unlock()

	s.publishSeason(ctx, year, lastWeek, len(parsed), skipped, events)

	if s.deps.Checkpoints != nil && lastWeek > 0 {
		if err := s.deps.Checkpoints.Save(ctx, year, lastWeek); err != nil {
			log.Printf("[scrape] Failed to save checkpoint: %v", err)
		}
	}

	log.Printf("[scrape] ✓ Season %d: %d games persisted, %d skipped", year, len(parsed), skipped)
	return nil
}

func (s *Service) persistGame(ctx context.Context, tx *sql.Tx, game *boxscore.Game) (publisher.GameEvent, error) {
	awayTeam, err := s.deps.Teams.FindOrCreateByName(ctx, game.AwayTeam)
	if err != nil {
		return publisher.GameEvent{}, err
	}
	homeTeam, err := s.deps.Teams.FindOrCreateByName(ctx, game.HomeTeam)
	if err != nil {
		return publisher.GameEvent{}, err
	}

	row := &store.Game{
		Date:         game.Date,
		GameType:     int(game.Type),
		HomeTeamID:   homeTeam.TeamID,
		AwayTeamID:   awayTeam.TeamID,
		Overtime:     game.Overtime,
		AwayTeamName: game.AwayTeam,
		HomeTeamName: game.HomeTeam,
		StadiumName:  game.Stadium,
	}
	if game.Week > 0 {
		row.Week = sql.NullInt32{Int32: int32(game.Week), Valid: true}
	}
	if game.HasAttendance {
		row.Attendance = sql.NullInt32{Int32: int32(game.Attendance), Valid: true}
	}

	if game.Stadium != "" {
		stadium, err := s.deps.Stadiums.FindOrCreateByName(ctx, game.Stadium)
		if err != nil {
			var unknown *store.UnknownEntityError
			if !errors.As(err, &unknown) {
				return publisher.GameEvent{}, err
			}
		} else {
			row.StadiumID = sql.NullInt32{Int32: int32(stadium.StadiumID), Valid: true}
			if err := s.deps.Teams.SetHomeStadium(ctx, homeTeam.TeamID, stadium.StadiumID); err != nil {
				return publisher.GameEvent{}, err
			}
		}
	}

	if err := s.deps.Games.InsertTx(ctx, tx, row); err != nil {
		return publisher.GameEvent{}, err
	}

	awayStat := &store.TeamStat{GameID: row.GameID, TeamID: awayTeam.TeamID, IsHome: false, Stats: game.Away, Raw: game.AwayRaw}
	homeStat := &store.TeamStat{GameID: row.GameID, TeamID: homeTeam.TeamID, IsHome: true, Stats: game.Home, Raw: game.HomeRaw}
	if err := s.deps.Stats.InsertTx(ctx, tx, awayStat); err != nil {
		return publisher.GameEvent{}, err
	}
	if err := s.deps.Stats.InsertTx(ctx, tx, homeStat); err != nil {
		return publisher.GameEvent{}, err
	}

	for name, pstats := range game.Players {
		teamID := awayTeam.TeamID
		if pstats.Team == game.HomeTeam {
			teamID = homeTeam.TeamID
		}
		record := &store.PlayerStat{
			GameID: row.GameID,
			TeamID: teamID,
			Name:   name,
			Date:   game.Date,
			Stats:  pstats.Stats,
		}
		if err := s.deps.Players.InsertTx(ctx, tx, record); err != nil {
			return publisher.GameEvent{}, err
		}
	}

	return publisher.GameEvent{
		GameID:   row.GameID,
		Date:     game.Date.Format("2006-01-02"),
		Week:     game.Week,
		AwayTeam: game.AwayTeam,
		HomeTeam: game.HomeTeam,
	}, nil
}

// publishSeason emits stream events after commit. Publishing is best effort;
// a dead Redis does not fail the run.
func (s *Service) publishSeason(ctx context.Context, year, lastWeek, games, skipped int, events []publisher.GameEvent) {
	if s.deps.Publisher == nil {
		return
	}

	for _, event := range events {
		if err := s.deps.Publisher.PublishGameScraped(ctx, event); err != nil {
			log.Printf("[scrape] Failed to publish game event: %v", err)
			break
		}
	}

	event := publisher.SeasonEvent{Year: year, LastWeek: lastWeek, Games: games, Skipped: skipped}
	if err := s.deps.Publisher.PublishSeasonScraped(ctx, event); err != nil {
		log.Printf("[scrape] Failed to publish season event: %v", err)
	}
}
