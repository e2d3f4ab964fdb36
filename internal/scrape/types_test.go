package scrape

import (
	"testing"
	"time"
)

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"september opener", time.Date(2023, time.September, 10, 0, 0, 0, 0, time.UTC), 2023},
		{"december game", time.Date(2023, time.December, 24, 0, 0, 0, 0, time.UTC), 2023},
		{"january playoff", time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC), 2023},
		{"february super bowl", time.Date(2024, time.February, 11, 0, 0, 0, 0, time.UTC), 2023},
		{"june boundary", time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), 2023},
		{"july boundary", time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), 2024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeasonOf(tt.date); got != tt.want {
				t.Errorf("SeasonOf(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestRunCopy(t *testing.T) {
	run := &Run{Mode: ModeAll, Status: RunStatusRunning, GamesScraped: 12}

	cpy := run.Copy()
	cpy.GamesScraped = 99

	if run.GamesScraped != 12 {
		t.Errorf("mutating the copy changed the original: %d", run.GamesScraped)
	}

	var nilRun *Run
	if nilRun.Copy() != nil {
		t.Error("Copy of nil run should be nil")
	}
}
