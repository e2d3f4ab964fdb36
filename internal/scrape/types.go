package scrape

import "time"

// Mode enumerates the supported scrape run variants.
type Mode string

const (
	// ModeAll backfills every season from FirstSeason forward.
	ModeAll Mode = "all"

	// ModeRecent resumes from the checkpoint (year, week+1).
	ModeRecent Mode = "recent"
)

// FirstSeason is the earliest season with complete box scores on the source.
const FirstSeason = 1978

// RunStatus represents the lifecycle state for a scrape run.
type RunStatus string

const (
	RunStatusIdle      RunStatus = "idle"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is the in-memory record of the current or most recent scrape run.
type Run struct {
	Mode         Mode      `json:"mode"`
	Status       RunStatus `json:"status"`
	CurrentYear  int       `json:"current_year,omitempty"`
	SeasonsDone  int       `json:"seasons_done"`
	GamesScraped int       `json:"games_scraped"`
	GamesSkipped int       `json:"games_skipped"`
	LastError    string    `json:"last_error,omitempty"`
	StartedAt    time.Time `json:"started_at,omitempty"`
	CompletedAt  time.Time `json:"completed_at,omitempty"`
}

// Copy returns a shallow copy to prevent external mutation.
func (r *Run) Copy() *Run {
	if r == nil {
		return nil
	}
	cpy := *r
	return &cpy
}

// Reporter receives lifecycle callbacks from a scrape run.
type Reporter interface {
	OnRunStart(mode Mode, startYear int)
	OnSeasonStart(year int, games int)
	OnGameScraped(url string, current int, total int)
	OnSeasonComplete(year int, scraped int, skipped int)
	OnRunComplete()
	OnRunError(err error)
}
