package ws

import (
	"encoding/json"
	"time"

	"github.com/fortuna/gridiron/internal/scrape"
)

// ProgressReporter broadcasts scrape lifecycle events over the hub as JSON.
type ProgressReporter struct {
	hub *Hub
}

// NewProgressReporter creates a reporter broadcasting on hub.
func NewProgressReporter(hub *Hub) *ProgressReporter {
	return &ProgressReporter{hub: hub}
}

var _ scrape.Reporter = (*ProgressReporter)(nil)

type progressEvent struct {
	Event     string `json:"event"`
	Timestamp int64  `json:"timestamp"`

	Mode    string `json:"mode,omitempty"`
	Year    int    `json:"year,omitempty"`
	URL     string `json:"url,omitempty"`
	Current int    `json:"current,omitempty"`
	Total   int    `json:"total,omitempty"`
	Scraped int    `json:"scraped,omitempty"`
	Skipped int    `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r *ProgressReporter) emit(event progressEvent) {
	event.Timestamp = time.Now().Unix()
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	r.hub.Broadcast(data)
}

func (r *ProgressReporter) OnRunStart(mode scrape.Mode, startYear int) {
	r.emit(progressEvent{Event: "run_start", Mode: string(mode), Year: startYear})
}

func (r *ProgressReporter) OnSeasonStart(year int, games int) {
	r.emit(progressEvent{Event: "season_start", Year: year, Total: games})
}

func (r *ProgressReporter) OnGameScraped(url string, current int, total int) {
	r.emit(progressEvent{Event: "game_scraped", URL: url, Current: current, Total: total})
}

func (r *ProgressReporter) OnSeasonComplete(year int, scraped int, skipped int) {
	r.emit(progressEvent{Event: "season_complete", Year: year, Scraped: scraped, Skipped: skipped})
}

func (r *ProgressReporter) OnRunComplete() {
	r.emit(progressEvent{Event: "run_complete"})
}

func (r *ProgressReporter) OnRunError(err error) {
	r.emit(progressEvent{Event: "run_error", Error: err.Error()})
}
