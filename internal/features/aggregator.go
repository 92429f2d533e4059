package features

import (
	"context"
	"fmt"

	"github.com/pkjoshua/boltstheover/internal/db"
	"github.com/pkjoshua/boltstheover/pkg/models"
)

// RecentFormWindow is the number of games in the recent-form average.
const RecentFormWindow = 10

// unknownOpponent is rendered when the schedule references a team the
// teams table does not know about.
const unknownOpponent = "Unknown Opponent"

// Aggregator shapes repository data into the feature bundle the suggestion
// engine consumes. Pure data shaping: no scoring decisions are made here.
type Aggregator struct {
	stats db.StatsStore
}

// NewAggregator creates a feature aggregator over the stats repository
func NewAggregator(stats db.StatsStore) *Aggregator {
	return &Aggregator{stats: stats}
}

// Aggregate pulls every statistical input for the queried team's upcoming
// game: display names, season context splits, last-10 form, head-to-head
// history and the full matchup log.
//
// Context averages are pulled per team in the side that team will actually
// play: the home team's home splits against the away team's away splits.
// Absent history travels through the bundle as nil fields; only repository
// failures return an error.
func (a *Aggregator) Aggregate(ctx context.Context, game *models.ScheduledGame, teamID string) (models.FeatureBundle, error) {
	side := game.SideOf(teamID)
	opponentID := game.OpponentOf(teamID)

	bundle := models.FeatureBundle{
		Game:       *game,
		TeamID:     teamID,
		OpponentID: opponentID,
		Side:       side,
	}

	team, err := a.stats.TeamByID(ctx, teamID)
	if err != nil {
		return bundle, fmt.Errorf("resolve team name: %w", err)
	}
	if team != nil {
		bundle.TeamName = team.Name
	}

	opponent, err := a.stats.TeamByID(ctx, opponentID)
	if err != nil {
		return bundle, fmt.Errorf("resolve opponent name: %w", err)
	}
	if opponent != nil {
		bundle.OpponentName = opponent.Name
	} else {
		bundle.OpponentName = unknownOpponent
	}

	bundle.TeamContext, err = a.stats.ContextAverage(ctx, teamID, side)
	if err != nil {
		return bundle, fmt.Errorf("team context average: %w", err)
	}

	bundle.OpponentContext, err = a.stats.ContextAverage(ctx, opponentID, side.Opposite())
	if err != nil {
		return bundle, fmt.Errorf("opponent context average: %w", err)
	}

	bundle.TeamForm, err = a.stats.RecentFormAverage(ctx, teamID, RecentFormWindow)
	if err != nil {
		return bundle, fmt.Errorf("team recent form: %w", err)
	}

	bundle.OpponentForm, err = a.stats.RecentFormAverage(ctx, opponentID, RecentFormWindow)
	if err != nil {
		return bundle, fmt.Errorf("opponent recent form: %w", err)
	}

	bundle.HeadToHead, err = a.stats.HeadToHeadAggregate(ctx, teamID, opponentID)
	if err != nil {
		return bundle, fmt.Errorf("head to head aggregate: %w", err)
	}

	bundle.MatchupLog, err = a.stats.MatchupGameLog(ctx, teamID, opponentID)
	if err != nil {
		return bundle, fmt.Errorf("matchup game log: %w", err)
	}

	return bundle, nil
}
