package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkjoshua/boltstheover/pkg/models"
)

// StatsStore defines the read-only statistics repository. All lookups
// return (nil, nil) for data that simply does not exist; errors are
// reserved for structural failures reaching the store.
type StatsStore interface {
	ResolveTeam(ctx context.Context, name string) (*models.Team, error)
	TeamByID(ctx context.Context, teamID string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	NextScheduledGame(ctx context.Context, teamID string, from time.Time) (*models.ScheduledGame, error)
	ContextAverage(ctx context.Context, teamID string, side models.Side) (*models.StatAverages, error)
	RecentFormAverage(ctx context.Context, teamID string, n int) (models.StatAverages, error)
	HeadToHeadAggregate(ctx context.Context, teamID, opponentID string) (*models.HeadToHead, error)
	MatchupGameLog(ctx context.Context, teamID, opponentID string) ([]models.MatchupGame, error)
	Ping(ctx context.Context) error
}

// StatsClient implements StatsStore against Postgres
type StatsClient struct {
	db *sql.DB
}

// NewStatsClient creates a stats repository over an open connection
func NewStatsClient(database *sql.DB) *StatsClient {
	return &StatsClient{db: database}
}

const teamColumns = `team_id, name, COALESCE(alias, ''), COALESCE(conference_name, ''), COALESCE(division_name, '')`

// ResolveTeam looks a team up by its exact display name
func (c *StatsClient) ResolveTeam(ctx context.Context, name string) (*models.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE name = $1`, teamColumns)

	var t models.Team
	err := c.db.QueryRowContext(ctx, query, name).Scan(
		&t.TeamID, &t.Name, &t.Alias, &t.ConferenceName, &t.DivisionName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query team by name: %w", err)
	}

	return &t, nil
}

// TeamByID looks a team up by identifier
func (c *StatsClient) TeamByID(ctx context.Context, teamID string) (*models.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE team_id = $1`, teamColumns)

	var t models.Team
	err := c.db.QueryRowContext(ctx, query, teamID).Scan(
		&t.TeamID, &t.Name, &t.Alias, &t.ConferenceName, &t.DivisionName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query team by id: %w", err)
	}

	return &t, nil
}

// ListTeams returns every known team ordered by name
func (c *StatsClient) ListTeams(ctx context.Context) ([]models.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams ORDER BY name ASC`, teamColumns)

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.TeamID, &t.Name, &t.Alias, &t.ConferenceName, &t.DivisionName); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}

	return teams, nil
}

// NextScheduledGame finds the earliest game on or after the given time in
// which the team participates. Date ordering is used uniformly; row
// identifiers are not guaranteed chronological once games are backfilled.
func (c *StatsClient) NextScheduledGame(ctx context.Context, teamID string, from time.Time) (*models.ScheduledGame, error) {
	query := `
		SELECT global_event_id, event_id, date, home_team_id, away_team_id
		FROM schedule
		WHERE date >= $1 AND (home_team_id = $2 OR away_team_id = $2)
		ORDER BY date ASC
		LIMIT 1
	`

	var g models.ScheduledGame
	err := c.db.QueryRowContext(ctx, query, from, teamID).Scan(
		&g.GlobalEventID, &g.EventID, &g.Date, &g.HomeTeamID, &g.AwayTeamID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query next game: %w", err)
	}

	return &g, nil
}

// ContextAverage averages the four tracked metrics over the team's
// historical games on the given side. Returns nil when the team has no
// games on that side -- "no context" is distinct from a zero average.
func (c *StatsClient) ContextAverage(ctx context.Context, teamID string, side models.Side) (*models.StatAverages, error) {
	query := `
		SELECT AVG(goals), AVG(shots), AVG(powerplays), AVG(penalty_minutes)
		FROM team_stats_per_game
		WHERE team_id = $1 AND home_away = $2
	`

	var goals, shots, powerplays, pim sql.NullFloat64
	err := c.db.QueryRowContext(ctx, query, teamID, string(side)).Scan(&goals, &shots, &powerplays, &pim)
	if err != nil {
		return nil, fmt.Errorf("query context average: %w", err)
	}

	// AVG over zero rows is NULL
	if !goals.Valid {
		return nil, nil
	}

	return &models.StatAverages{
		Goals:          goals.Float64,
		Shots:          shots.Float64,
		Powerplays:     powerplays.Float64,
		PenaltyMinutes: pim.Float64,
	}, nil
}

// RecentFormAverage averages the four tracked metrics over the team's n
// most recent games by date. A team with no games gets a zero-valued
// record, not an absence.
func (c *StatsClient) RecentFormAverage(ctx context.Context, teamID string, n int) (models.StatAverages, error) {
	query := `
		SELECT AVG(goals), AVG(shots), AVG(powerplays), AVG(penalty_minutes)
		FROM (
			SELECT goals, shots, powerplays, penalty_minutes
			FROM team_stats_per_game
			WHERE team_id = $1
			ORDER BY date DESC
			LIMIT $2
		) recent
	`

	var goals, shots, powerplays, pim sql.NullFloat64
	err := c.db.QueryRowContext(ctx, query, teamID, n).Scan(&goals, &shots, &powerplays, &pim)
	if err != nil {
		return models.StatAverages{}, fmt.Errorf("query recent form: %w", err)
	}

	if !goals.Valid {
		return models.StatAverages{}, nil
	}

	return models.StatAverages{
		Goals:          goals.Float64,
		Shots:          shots.Float64,
		Powerplays:     powerplays.Float64,
		PenaltyMinutes: pim.Float64,
	}, nil
}

// HeadToHeadAggregate combines both teams' rows from every historical
// meeting. The x2 factor turns the per-row average into a combined
// per-game figure across both participants. Returns nil when the teams
// have never met.
func (c *StatsClient) HeadToHeadAggregate(ctx context.Context, teamID, opponentID string) (*models.HeadToHead, error) {
	query := `
		SELECT AVG(goals)*2, AVG(shots)*2, AVG(penalty_minutes)*2
		FROM team_stats_per_game
		WHERE (team_id = $1 AND opponent_id = $2)
		   OR (team_id = $2 AND opponent_id = $1)
	`

	var goals, shots, pim sql.NullFloat64
	err := c.db.QueryRowContext(ctx, query, teamID, opponentID).Scan(&goals, &shots, &pim)
	if err != nil {
		return nil, fmt.Errorf("query head to head: %w", err)
	}

	if !goals.Valid {
		return nil, nil
	}

	return &models.HeadToHead{
		AvgGoals:          goals.Float64,
		AvgShots:          shots.Float64,
		AvgPenaltyMinutes: pim.Float64,
	}, nil
}

// MatchupGameLog lists every historical meeting between the two teams in
// ascending chronological order, with both teams' goals and shots. The
// self-join pairs each team's row with its opponent's row for the same
// event, so each event appears exactly once.
func (c *StatsClient) MatchupGameLog(ctx context.Context, teamID, opponentID string) ([]models.MatchupGame, error) {
	query := `
		SELECT a.event_id, a.date,
		       a.goals AS team_goals, a.shots AS team_shots,
		       b.goals AS opp_goals, b.shots AS opp_shots
		FROM team_stats_per_game AS a
		JOIN team_stats_per_game AS b
		  ON a.event_id = b.event_id AND a.team_id <> b.team_id
		WHERE a.team_id = $1 AND b.team_id = $2
		ORDER BY a.date ASC
	`

	rows, err := c.db.QueryContext(ctx, query, teamID, opponentID)
	if err != nil {
		return nil, fmt.Errorf("query matchup log: %w", err)
	}
	defer rows.Close()

	var log []models.MatchupGame
	for rows.Next() {
		var g models.MatchupGame
		if err := rows.Scan(&g.EventID, &g.Date, &g.TeamGoals, &g.TeamShots, &g.OppGoals, &g.OppShots); err != nil {
			return nil, fmt.Errorf("scan matchup game: %w", err)
		}
		log = append(log, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matchup log: %w", err)
	}

	return log, nil
}

// Ping checks database connectivity
func (c *StatsClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
