package features

import (
	"os"
	"path/filepath"
	"testing"
)

func rawPipelineFixture() *Table {
	t := NewTable([]string{
		"index", "date", "week", "postseason", "stadium", "attendance", "overtime",
		"away_team", "home_team",
		"away_score", "home_score",
		"away_att-comp-int", "home_att-comp-int",
		"away_third_downs", "home_third_downs",
		"away_time_of_possession", "home_time_of_possession",
		"away_had_blocked", "home_had_blocked",
	})
	t.Rows = append(t.Rows, map[string]string{
		"index": "0", "date": "September 10, 2023", "week": "1", "postseason": "0",
		"stadium": "Lincoln Financial Field", "attendance": "69796", "overtime": "false",
		"away_team": "Dallas Cowboys", "home_team": "Philadelphia Eagles",
		"away_score": "24", "home_score": "17",
		"away_att-comp-int": "22-14-1", "home_att-comp-int": "31-20-0",
		"away_third_downs": "5-12-43.5%", "home_third_downs": "4-11-36.4%",
		"away_time_of_possession": "31:12", "home_time_of_possession": "28:48",
		"away_had_blocked": "0", "home_had_blocked": "0",
	})
	t.Rows = append(t.Rows, map[string]string{
		"index": "1", "date": "September 17, 2023", "week": "2", "postseason": "0",
		"stadium": "AT&T Stadium", "attendance": "unknown", "overtime": "true",
		"away_team": "Philadelphia Eagles", "home_team": "Dallas Cowboys",
		"away_score": "20", "home_score": "27",
		"away_att-comp-int": "35-22-2", "home_att-comp-int": "28-19-0",
		"away_third_downs": "6-14-42.9%", "home_third_downs": "7-13-53.8%",
		"away_time_of_possession": "29:30", "home_time_of_possession": "30:30",
		"away_had_blocked": "1", "home_had_blocked": "0",
	})
	return t
}

func runPipeline(t *testing.T, dir string) {
	t.Helper()

	p := &Pipeline{Dir: dir, Resolve: identityResolve}
	if err := p.RunAll(); err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	dir := t.TempDir()
	if err := rawPipelineFixture().WriteFile(filepath.Join(dir, RawFile)); err != nil {
		t.Fatal(err)
	}

	runPipeline(t, dir)

	final, err := ReadFile(filepath.Join(dir, PreprocessFile))
	if err != nil {
		t.Fatalf("reading final stage: %v", err)
	}

	// Two teams, two games each, final game dropped: one row per team.
	if len(final.Rows) != 2 {
		t.Fatalf("expected 2 preprocessed rows, got %d", len(final.Rows))
	}

	for _, row := range final.Rows {
		if _, ok := row["recency"]; !ok {
			t.Error("preprocessed row missing recency")
		}
		if _, ok := row["team"]; ok {
			t.Error("preprocessed row should not carry team name")
		}
		if row["prev_overtime"] != "0" {
			t.Errorf("prev_overtime = %q, expected 0 for week 1 games", row["prev_overtime"])
		}
	}
}

func TestPipelineIdempotence(t *testing.T) {
	dir := t.TempDir()
	if err := rawPipelineFixture().WriteFile(filepath.Join(dir, RawFile)); err != nil {
		t.Fatal(err)
	}

	runPipeline(t, dir)

	files := []string{ExpandFile, SplitFile, StaggerFile, PreprocessFile}
	first := make(map[string][]byte, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		first[name] = data
	}

	runPipeline(t, dir)

	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != string(first[name]) {
			t.Errorf("%s differs between runs", name)
		}
	}
}

func TestTableCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.csv")

	in := NewTable([]string{"a", "b", "c"})
	in.Rows = append(in.Rows, map[string]string{"a": "1", "c": "3"})

	if err := in.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	out, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(out.Cols) != 3 || out.Cols[1] != "b" {
		t.Errorf("columns did not round-trip: %v", out.Cols)
	}
	if _, ok := out.Rows[0]["b"]; ok {
		t.Error("null cell should read back as absent")
	}
	if out.Rows[0]["a"] != "1" || out.Rows[0]["c"] != "3" {
		t.Errorf("values did not round-trip: %v", out.Rows[0])
	}
}
