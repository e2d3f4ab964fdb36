package boxscore

import (
	"math"
	"testing"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"First Downs", "first_downs"},
		{"Att - Comp - Int", "att-comp-int"},
		{"Sacked - Yds Lost", "sacked-yds_lost"},
		{"Avg. Gain", "avg_gain"},
		{"Penalties - Yards", "penalties-yards"},
		{"Time of Possession", "time_of_possession"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := NormalizeLabel(tt.label); got != tt.expected {
				t.Errorf("NormalizeLabel(%q) = %q, expected %q", tt.label, got, tt.expected)
			}
		})
	}
}

func TestToSeconds(t *testing.T) {
	secs, ok := ToSeconds("9:45")
	if !ok || secs != 585 {
		t.Errorf("ToSeconds(9:45) = %d, %v; expected 585, true", secs, ok)
	}

	if _, ok := ToSeconds("not a clock"); ok {
		t.Error("expected ToSeconds to reject a non-clock string")
	}
	if _, ok := ToSeconds(""); ok {
		t.Error("expected ToSeconds to reject the empty string")
	}
}

func TestProcessStatValuePercent(t *testing.T) {
	v, ok := ProcessStatValue("43.5%", "third_downs_percent")
	if !ok {
		t.Fatal("expected percent value to parse")
	}
	if math.Abs(v-0.435) > 1e-9 {
		t.Errorf("expected 0.435, got %v", v)
	}
}

func TestProcessStatValueNullable(t *testing.T) {
	v, ok := ProcessStatValue("", "had_blocked")
	if !ok || v != 0 {
		t.Errorf("nullable empty value should map to zero, got %v, %v", v, ok)
	}

	if _, ok := ProcessStatValue("", "first_downs"); ok {
		t.Error("non-nullable empty value should not parse")
	}
}

func TestExpandAssignComposite(t *testing.T) {
	away, home := make(TeamStats), make(TeamStats)
	ExpandAssign("att-comp-int", "22-14-1", "30-21-0", away, home)

	checks := []struct {
		stats TeamStats
		col   string
		want  float64
	}{
		{away, "pass_attempts", 22},
		{away, "pass_completions", 14},
		{away, "pass_interceptions", 1},
		{home, "pass_attempts", 30},
		{home, "pass_completions", 21},
		{home, "pass_interceptions", 0},
	}
	for _, c := range checks {
		if got := c.stats[c.col]; got != c.want {
			t.Errorf("%s = %v, expected %v", c.col, got, c.want)
		}
	}

	if away["pass_attempts"] < away["pass_completions"] {
		t.Error("attempts should never be below completions")
	}
}

func TestExpandAssignShortValue(t *testing.T) {
	// A two-part value against a three-field mapping right-pads with empty
	// strings; the missing part lands as zero.
	away, home := make(TeamStats), make(TeamStats)
	ExpandAssign("att-comp-int", "22-14", "30-21-0", away, home)

	if away["pass_interceptions"] != 0 {
		t.Errorf("missing composite part should be zero, got %v", away["pass_interceptions"])
	}
}

func TestExpandAssignDoubleDash(t *testing.T) {
	away, home := make(TeamStats), make(TeamStats)
	ExpandAssign("kickoff_returns", "3--45", "2-38", away, home)

	if away["kickoff_returns"] != 3 || away["kickoff_return_yards"] != 45 {
		t.Errorf("double dash should collapse before splitting: got %v, %v",
			away["kickoff_returns"], away["kickoff_return_yards"])
	}
	if home["kickoff_returns"] != 2 || home["kickoff_return_yards"] != 38 {
		t.Errorf("plain value mis-split: got %v, %v",
			home["kickoff_returns"], home["kickoff_return_yards"])
	}
}

func TestExpandAssignClock(t *testing.T) {
	away, home := make(TeamStats), make(TeamStats)
	ExpandAssign("time_of_possession", "31:12", "28:48", away, home)

	if away["time_of_possession"] != 1872 {
		t.Errorf("expected 1872 seconds, got %v", away["time_of_possession"])
	}
	if home["time_of_possession"] != 1728 {
		t.Errorf("expected 1728 seconds, got %v", home["time_of_possession"])
	}
}

func TestExpandAssignThirdDowns(t *testing.T) {
	away, home := make(TeamStats), make(TeamStats)
	ExpandAssign("third_downs", "5-11-45.5%", "4-12-33.3%", away, home)

	if away["third_down_conversions"] != 5 || away["third_down_attempts"] != 11 {
		t.Errorf("third down counts wrong: %v / %v",
			away["third_down_conversions"], away["third_down_attempts"])
	}
	if math.Abs(away["third_down_rate"]-0.455) > 1e-9 {
		t.Errorf("expected rate 0.455, got %v", away["third_down_rate"])
	}
	if math.Abs(home["third_down_rate"]-0.333) > 1e-9 {
		t.Errorf("expected rate 0.333, got %v", home["third_down_rate"])
	}
}
