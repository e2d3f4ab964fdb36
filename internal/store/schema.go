package store

// migrations are applied in order by Migrate.
var migrations = []struct {
	Version string
	SQL     string
}{
	{
		Version: "001_create_stadiums",
		SQL: `
			CREATE TABLE IF NOT EXISTS stadium (
				stadium_id SERIAL PRIMARY KEY,
				name TEXT NOT NULL UNIQUE,
				city TEXT,
				state TEXT,
				capacity INTEGER,
				elevation INTEGER,
				latitude TEXT,
				longitude TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		Version: "002_create_teams",
		SQL: `
			CREATE TABLE IF NOT EXISTS team (
				team_id SERIAL PRIMARY KEY,
				name TEXT NOT NULL UNIQUE,
				abbreviation TEXT UNIQUE,
				stadium_id INTEGER REFERENCES stadium(stadium_id),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		Version: "003_create_games",
		SQL: `
			CREATE TABLE IF NOT EXISTS game (
				game_id SERIAL PRIMARY KEY,
				date DATE NOT NULL,
				week INTEGER,
				game_type INTEGER NOT NULL DEFAULT 0,
				home_team_id INTEGER NOT NULL REFERENCES team(team_id),
				away_team_id INTEGER NOT NULL REFERENCES team(team_id),
				stadium_id INTEGER REFERENCES stadium(stadium_id),
				attendance INTEGER,
				overtime BOOLEAN NOT NULL DEFAULT FALSE,
				away_team_name TEXT NOT NULL,
				home_team_name TEXT NOT NULL,
				stadium_name TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT unique_game UNIQUE (date, home_team_id, away_team_id)
			)
		`,
	},
	{
		Version: "004_create_team_stats",
		SQL: `
			CREATE TABLE IF NOT EXISTS team_stat (
				team_stat_id SERIAL PRIMARY KEY,
				game_id INTEGER NOT NULL REFERENCES game(game_id) ON DELETE CASCADE,
				team_id INTEGER NOT NULL REFERENCES team(team_id),
				is_home BOOLEAN NOT NULL,
				score DOUBLE PRECISION,
				score_q1 DOUBLE PRECISION,
				score_q2 DOUBLE PRECISION,
				score_q3 DOUBLE PRECISION,
				score_q4 DOUBLE PRECISION,
				score_overtime DOUBLE PRECISION,
				first_downs DOUBLE PRECISION,
				first_downs_rush DOUBLE PRECISION,
				first_downs_pass DOUBLE PRECISION,
				first_downs_penalty DOUBLE PRECISION,
				total_net_yards DOUBLE PRECISION,
				rush_net_yards DOUBLE PRECISION,
				rush_plays DOUBLE PRECISION,
				rush_avg_gain DOUBLE PRECISION,
				pass_net_yards DOUBLE PRECISION,
				pass_gross_yards DOUBLE PRECISION,
				pass_attempts DOUBLE PRECISION,
				pass_completions DOUBLE PRECISION,
				pass_interceptions DOUBLE PRECISION,
				pass_avg_gain DOUBLE PRECISION,
				pass_sacked DOUBLE PRECISION,
				pass_sacked_yards_lost DOUBLE PRECISION,
				punts DOUBLE PRECISION,
				punts_avg DOUBLE PRECISION,
				had_blocked DOUBLE PRECISION,
				punt_returns DOUBLE PRECISION,
				punt_return_yards DOUBLE PRECISION,
				kickoff_returns DOUBLE PRECISION,
				kickoff_return_yards DOUBLE PRECISION,
				interception_returns DOUBLE PRECISION,
				interception_return_yards DOUBLE PRECISION,
				penalties DOUBLE PRECISION,
				penalty_yards DOUBLE PRECISION,
				fumbles DOUBLE PRECISION,
				fumbles_lost DOUBLE PRECISION,
				field_goals_made DOUBLE PRECISION,
				field_goals_attempted DOUBLE PRECISION,
				third_down_conversions DOUBLE PRECISION,
				third_down_attempts DOUBLE PRECISION,
				third_down_rate DOUBLE PRECISION,
				fourth_down_conversions DOUBLE PRECISION,
				fourth_down_attempts DOUBLE PRECISION,
				fourth_down_rate DOUBLE PRECISION,
				total_plays DOUBLE PRECISION,
				avg_gain DOUBLE PRECISION,
				time_of_possession DOUBLE PRECISION,
				raw_stats JSONB NOT NULL DEFAULT '{}',
				CONSTRAINT unique_team_stat UNIQUE (game_id, team_id)
			)
		`,
	},
	{
		Version: "005_create_player_stats",
		SQL: `
			CREATE TABLE IF NOT EXISTS player_stat (
				player_stat_id SERIAL PRIMARY KEY,
				game_id INTEGER NOT NULL REFERENCES game(game_id) ON DELETE CASCADE,
				team_id INTEGER NOT NULL REFERENCES team(team_id),
				name TEXT NOT NULL,
				date DATE NOT NULL,
				stats JSONB NOT NULL DEFAULT '{}',
				CONSTRAINT unique_player_stat UNIQUE (name, date)
			)
		`,
	},
	{
		Version: "006_create_game_indexes",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_game_date ON game(date);
			CREATE INDEX IF NOT EXISTS idx_team_stat_game ON team_stat(game_id);
			CREATE INDEX IF NOT EXISTS idx_player_stat_game ON player_stat(game_id)
		`,
	},
}
