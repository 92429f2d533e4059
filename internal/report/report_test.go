package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pkjoshua/boltstheover/pkg/models"
)

type mockStats struct {
	team       *models.Team
	opponent   *models.Team
	game       *models.ScheduledGame
	contexts   map[string]*models.StatAverages
	forms      map[string]models.StatAverages
	headToHead *models.HeadToHead
	matchupLog []models.MatchupGame
	failNext   bool
}

func (m *mockStats) ResolveTeam(ctx context.Context, name string) (*models.Team, error) {
	if m.team != nil && m.team.Name == name {
		return m.team, nil
	}
	return nil, nil
}

func (m *mockStats) TeamByID(ctx context.Context, teamID string) (*models.Team, error) {
	if m.team != nil && m.team.TeamID == teamID {
		return m.team, nil
	}
	if m.opponent != nil && m.opponent.TeamID == teamID {
		return m.opponent, nil
	}
	return nil, nil
}

func (m *mockStats) ListTeams(ctx context.Context) ([]models.Team, error) {
	return nil, nil
}

func (m *mockStats) NextScheduledGame(ctx context.Context, teamID string, from time.Time) (*models.ScheduledGame, error) {
	if m.failNext {
		return nil, errors.New("store unreachable")
	}
	return m.game, nil
}

func (m *mockStats) ContextAverage(ctx context.Context, teamID string, side models.Side) (*models.StatAverages, error) {
	return m.contexts[teamID], nil
}

func (m *mockStats) RecentFormAverage(ctx context.Context, teamID string, n int) (models.StatAverages, error) {
	return m.forms[teamID], nil
}

func (m *mockStats) HeadToHeadAggregate(ctx context.Context, teamID, opponentID string) (*models.HeadToHead, error) {
	return m.headToHead, nil
}

func (m *mockStats) MatchupGameLog(ctx context.Context, teamID, opponentID string) ([]models.MatchupGame, error) {
	return m.matchupLog, nil
}

func (m *mockStats) Ping(ctx context.Context) error {
	return nil
}

type mockOdds struct {
	odds *models.EventOdds
}

func (m *mockOdds) EventOdds(ctx context.Context, eventID string) (*models.EventOdds, error) {
	if m.odds != nil {
		return m.odds, nil
	}
	return &models.EventOdds{EventID: eventID}, nil
}

func fullMock() *mockStats {
	return &mockStats{
		team:     &models.Team{TeamID: "team-a", Name: "Tampa Bay Lightning"},
		opponent: &models.Team{TeamID: "team-b", Name: "Florida Panthers"},
		game: &models.ScheduledGame{
			GlobalEventID: "ge-1",
			EventID:       "ev-1",
			Date:          time.Date(2026, 1, 10, 19, 0, 0, 0, time.UTC),
			HomeTeamID:    "team-a",
			AwayTeamID:    "team-b",
		},
		contexts: map[string]*models.StatAverages{
			"team-a": {Goals: 3.4, Shots: 31.2, Powerplays: 2.1, PenaltyMinutes: 8.5},
			"team-b": {Goals: 2.6, Shots: 27.8, Powerplays: 2.9, PenaltyMinutes: 10.1},
		},
		forms: map[string]models.StatAverages{
			"team-a": {Goals: 3.0, Shots: 30, Powerplays: 2, PenaltyMinutes: 8},
			"team-b": {Goals: 2.0, Shots: 28, Powerplays: 3, PenaltyMinutes: 10},
		},
		headToHead: &models.HeadToHead{AvgGoals: 4, AvgShots: 3, AvgPenaltyMinutes: 12},
		matchupLog: []models.MatchupGame{
			{EventID: "old-1", TeamGoals: 5, TeamShots: 33, OppGoals: 2, OppShots: 25},
		},
	}
}

func pricedOdds() *models.EventOdds {
	home := 1.83
	away := 2.05
	line := 6.0
	over := 1.91
	under := 1.91
	return &models.EventOdds{
		EventID: "ev-1",
		Winner:  &models.WinnerOdds{HomePrice: &home, AwayPrice: &away},
		Total:   &models.TotalOdds{Line: &line, OverPrice: &over, UnderPrice: &under},
	}
}

func TestBuildUnknownTeam(t *testing.T) {
	b := NewBuilder(&mockStats{}, &mockOdds{})

	got, err := b.Build(context.Background(), "Hartford Whalers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "No team found for name: Hartford Whalers\n" {
		t.Errorf("report = %q", got)
	}
}

func TestBuildNoUpcomingGame(t *testing.T) {
	stats := fullMock()
	stats.game = nil
	b := NewBuilder(stats, &mockOdds{})

	got, err := b.Build(context.Background(), "Tampa Bay Lightning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "No upcoming games found for team: Tampa Bay Lightning\n" {
		t.Errorf("report = %q", got)
	}
}

func TestBuildFullReport(t *testing.T) {
	b := NewBuilder(fullMock(), &mockOdds{odds: pricedOdds()})

	got, err := b.Build(context.Background(), "Tampa Bay Lightning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFragments := []string{
		"Team IDs:\n- Tampa Bay Lightning: team-a",
		"Tampa Bay Lightning's next game is home against the Florida Panthers (Team ID: team-b)",
		"Global Event ID: ge-1",
		"Event ID: ev-1",
		"Home Team ID: team-a",
		"Away Team ID: team-b",
		" -- Tampa Bay Lightning KPIs --",
		" -- Florida Panthers KPIs --",
		" -- H2H KPIs --",
		"Head-to-Head Stats Tampa Bay Lightning vs Florida Panthers:",
		" -- Previous Game Stats: Tampa Bay Lightning vs Florida Panthers --",
		"Game ID: old-1, Tampa Bay Lightning Goals: 5, Shots: 33; Florida Panthers Goals: 2, Shots: 25",
		" -- Tampa Bay Lightning Last 10 Games Stats --",
		" -- Florida Panthers Last 10 Games Stats --",
		"Odds Information:",
		"- winner_odds:",
		"  home_winner_odds: 1.83",
		"- total_odds:",
		"  game_total: 6.00",
		"Bet Suggestions:",
		"- Two-leg parlay suggestion: Bet on Tampa Bay Lightning to win. Also, bet on the Over.",
	}

	for _, fragment := range wantFragments {
		if !strings.Contains(got, fragment) {
			t.Errorf("report missing %q\nreport:\n%s", fragment, got)
		}
	}
}

func TestBuildOddsNotOut(t *testing.T) {
	b := NewBuilder(fullMock(), &mockOdds{})

	got, err := b.Build(context.Background(), "Tampa Bay Lightning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got, "- Odds not out yet. Check back the day of or before the game.") {
		t.Errorf("report missing the odds-not-out line:\n%s", got)
	}
	if !strings.Contains(got, "- No odds on record for this event.") {
		t.Errorf("report missing the empty odds dump line:\n%s", got)
	}
}

func TestRenderToleratesMissingHistory(t *testing.T) {
	stats := fullMock()
	stats.contexts = map[string]*models.StatAverages{}
	stats.headToHead = nil
	stats.matchupLog = nil
	b := NewBuilder(stats, &mockOdds{odds: pricedOdds()})

	got, err := b.Build(context.Background(), "Tampa Bay Lightning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFragments := []string{
		"No home games on record for season averages.",
		"No away games on record for season averages.",
		"No head-to-head history on record.",
		"No previous games on record.",
	}

	for _, fragment := range wantFragments {
		if !strings.Contains(got, fragment) {
			t.Errorf("report missing %q\nreport:\n%s", fragment, got)
		}
	}
}

func TestBuildRepositoryFailure(t *testing.T) {
	stats := fullMock()
	stats.failNext = true
	b := NewBuilder(stats, &mockOdds{})

	if _, err := b.Build(context.Background(), "Tampa Bay Lightning"); err == nil {
		t.Fatal("expected a repository failure to propagate")
	}
}

func TestBuildIdempotent(t *testing.T) {
	b := NewBuilder(fullMock(), &mockOdds{odds: pricedOdds()})

	first, err := b.Build(context.Background(), "Tampa Bay Lightning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := b.Build(context.Background(), "Tampa Bay Lightning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("repeated builds over unchanged data differ")
	}
}
