package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the tables this service reads. The ingestion jobs own the
// rows; running the migrations here just lets the service come up against
// an empty database.
func Migrate(database *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS teams (
			team_id VARCHAR(100) PRIMARY KEY,
			global_team_id VARCHAR(100),
			name VARCHAR(255) NOT NULL,
			alias VARCHAR(10),
			league_id VARCHAR(100),
			conference_id VARCHAR(100),
			conference_name VARCHAR(100),
			division_id VARCHAR(100),
			division_name VARCHAR(100)
		)`,

		`CREATE TABLE IF NOT EXISTS schedule (
			id BIGSERIAL PRIMARY KEY,
			global_event_id VARCHAR(100) UNIQUE NOT NULL,
			event_id VARCHAR(100) NOT NULL,
			season INTEGER,
			status VARCHAR(20),
			date TIMESTAMPTZ NOT NULL,
			home_team_id VARCHAR(100) REFERENCES teams(team_id),
			away_team_id VARCHAR(100) REFERENCES teams(team_id),
			home_points INTEGER,
			away_points INTEGER,
			winner_team_id VARCHAR(100)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_schedule_date ON schedule(date)`,
		`CREATE INDEX IF NOT EXISTS idx_schedule_home_team ON schedule(home_team_id)`,
		`CREATE INDEX IF NOT EXISTS idx_schedule_away_team ON schedule(away_team_id)`,

		`CREATE TABLE IF NOT EXISTS team_stats_per_game (
			event_id VARCHAR(100) NOT NULL,
			team_id VARCHAR(100) NOT NULL,
			opponent_id VARCHAR(100),
			season VARCHAR(20),
			date TIMESTAMPTZ NOT NULL,
			home_away VARCHAR(10) NOT NULL,
			result VARCHAR(10),
			goals INTEGER,
			shots INTEGER,
			powerplays INTEGER,
			penalty_minutes INTEGER,
			faceoffs_won INTEGER,
			faceoffs_lost INTEGER,
			PRIMARY KEY (event_id, team_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_team_stats_team_id ON team_stats_per_game(team_id)`,
		`CREATE INDEX IF NOT EXISTS idx_team_stats_date ON team_stats_per_game(date)`,
		`CREATE INDEX IF NOT EXISTS idx_team_stats_opponent ON team_stats_per_game(team_id, opponent_id)`,

		`CREATE TABLE IF NOT EXISTS winner_odds (
			id BIGSERIAL PRIMARY KEY,
			event_id VARCHAR(100) NOT NULL,
			market_id VARCHAR(100),
			book_id VARCHAR(100) NOT NULL DEFAULT '',
			home_winner_odds DOUBLE PRECISION,
			away_winner_odds DOUBLE PRECISION,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(event_id, book_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_winner_odds_event_id ON winner_odds(event_id)`,

		`CREATE TABLE IF NOT EXISTS spread_odds (
			id BIGSERIAL PRIMARY KEY,
			event_id VARCHAR(100) NOT NULL,
			market_id VARCHAR(100),
			book_id VARCHAR(100) NOT NULL DEFAULT '',
			home_spread DOUBLE PRECISION,
			home_spread_odds DOUBLE PRECISION,
			away_spread DOUBLE PRECISION,
			away_spread_odds DOUBLE PRECISION,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(event_id, book_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_spread_odds_event_id ON spread_odds(event_id)`,

		`CREATE TABLE IF NOT EXISTS total_odds (
			id BIGSERIAL PRIMARY KEY,
			event_id VARCHAR(100) NOT NULL,
			market_id VARCHAR(100),
			book_id VARCHAR(100) NOT NULL DEFAULT '',
			game_total DOUBLE PRECISION,
			game_over_odds DOUBLE PRECISION,
			game_under_odds DOUBLE PRECISION,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(event_id, book_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_total_odds_event_id ON total_odds(event_id)`,

		`CREATE TABLE IF NOT EXISTS home_total_odds (
			id BIGSERIAL PRIMARY KEY,
			event_id VARCHAR(100) NOT NULL,
			market_id VARCHAR(100),
			book_id VARCHAR(100) NOT NULL DEFAULT '',
			home_total DOUBLE PRECISION,
			home_over_odds DOUBLE PRECISION,
			home_under_odds DOUBLE PRECISION,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(event_id, book_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_home_total_odds_event_id ON home_total_odds(event_id)`,

		`CREATE TABLE IF NOT EXISTS away_total_odds (
			id BIGSERIAL PRIMARY KEY,
			event_id VARCHAR(100) NOT NULL,
			market_id VARCHAR(100),
			book_id VARCHAR(100) NOT NULL DEFAULT '',
			away_total DOUBLE PRECISION,
			away_over_odds DOUBLE PRECISION,
			away_under_odds DOUBLE PRECISION,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(event_id, book_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_away_total_odds_event_id ON away_total_odds(event_id)`,
	}

	for _, migration := range migrations {
		if _, err := database.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
