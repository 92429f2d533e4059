package models

import "time"

// Side identifies which end of a matchup a team occupies.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Opposite returns the other side of the matchup.
func (s Side) Opposite() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// Team represents an NHL team as persisted by the ingestion jobs
type Team struct {
	TeamID         string `json:"team_id"`
	Name           string `json:"name"`
	Alias          string `json:"alias,omitempty"`
	ConferenceName string `json:"conference_name,omitempty"`
	DivisionName   string `json:"division_name,omitempty"`
}

// ScheduledGame is one row of the schedule table
type ScheduledGame struct {
	GlobalEventID string    `json:"global_event_id"`
	EventID       string    `json:"event_id"`
	Date          time.Time `json:"date"`
	HomeTeamID    string    `json:"home_team_id"`
	AwayTeamID    string    `json:"away_team_id"`
}

// SideOf reports whether the given team plays this game at home or away.
// The schedule invariant guarantees the team is one of the two participants.
func (g *ScheduledGame) SideOf(teamID string) Side {
	if g.HomeTeamID == teamID {
		return SideHome
	}
	return SideAway
}

// OpponentOf returns the other participant's team ID.
func (g *ScheduledGame) OpponentOf(teamID string) string {
	if g.HomeTeamID == teamID {
		return g.AwayTeamID
	}
	return g.HomeTeamID
}

// StatAverages holds the per-game averages of the four tracked metrics.
type StatAverages struct {
	Goals          float64 `json:"avg_goals"`
	Shots          float64 `json:"avg_shots"`
	Powerplays     float64 `json:"avg_powerplays"`
	PenaltyMinutes float64 `json:"avg_penalty_minutes"`
}

// HeadToHead holds the combined per-game averages across every historical
// meeting of two teams, both participants' rows included.
type HeadToHead struct {
	AvgGoals          float64 `json:"avg_goals_h2h"`
	AvgShots          float64 `json:"avg_shots"`
	AvgPenaltyMinutes float64 `json:"avg_penalty_minutes_h2h"`
}

// MatchupGame is one historical meeting between two specific teams, with
// both teams' goals and shots for that game.
type MatchupGame struct {
	EventID   string    `json:"event_id"`
	Date      time.Time `json:"date"`
	TeamGoals int       `json:"team_goals"`
	TeamShots int       `json:"team_shots"`
	OppGoals  int       `json:"opp_goals"`
	OppShots  int       `json:"opp_shots"`
}

// FeatureBundle aggregates every statistical input the suggestion engine
// reads for one upcoming game, from the perspective of the queried team.
//
// Pointer fields are nil when the underlying history does not exist:
// context averages when the team has no games on that side, the
// head-to-head aggregate when the teams never met. Recent form is always
// populated; a team with no games gets an explicitly zero-valued record.
type FeatureBundle struct {
	Game         ScheduledGame `json:"game"`
	TeamID       string        `json:"team_id"`
	OpponentID   string        `json:"opponent_id"`
	TeamName     string        `json:"team_name"`
	OpponentName string        `json:"opponent_name"`
	Side         Side          `json:"side"`

	TeamContext     *StatAverages `json:"team_context"`
	OpponentContext *StatAverages `json:"opponent_context"`
	TeamForm        StatAverages  `json:"team_form"`
	OpponentForm    StatAverages  `json:"opponent_form"`
	HeadToHead      *HeadToHead   `json:"head_to_head"`
	MatchupLog      []MatchupGame `json:"matchup_log"`
}

// ErrorResponse is the standard JSON error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
