package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkjoshua/boltstheover/internal/db"
	"github.com/pkjoshua/boltstheover/internal/features"
	"github.com/pkjoshua/boltstheover/internal/suggest"
	"github.com/pkjoshua/boltstheover/pkg/models"
)

// Builder orchestrates one report run: resolve the team, locate its next
// game, aggregate the features and odds, score, and render the plain-text
// report. Runs are read-only and idempotent.
type Builder struct {
	stats db.StatsStore
	odds  db.OddsStore
	agg   *features.Aggregator
	now   func() time.Time
}

// NewBuilder creates a report builder
func NewBuilder(stats db.StatsStore, odds db.OddsStore) *Builder {
	return &Builder{
		stats: stats,
		odds:  odds,
		agg:   features.NewAggregator(stats),
		now:   time.Now,
	}
}

// Build renders the full betting report for a team name. An unknown team
// or a team with no upcoming game produces a one-line report; only
// repository failures return an error.
func (b *Builder) Build(ctx context.Context, teamName string) (string, error) {
	team, err := b.stats.ResolveTeam(ctx, teamName)
	if err != nil {
		return "", fmt.Errorf("resolve team: %w", err)
	}
	if team == nil {
		return fmt.Sprintf("No team found for name: %s\n", teamName), nil
	}

	game, err := b.stats.NextScheduledGame(ctx, team.TeamID, b.now())
	if err != nil {
		return "", fmt.Errorf("next scheduled game: %w", err)
	}
	if game == nil {
		return fmt.Sprintf("No upcoming games found for team: %s\n", team.Name), nil
	}

	bundle, err := b.agg.Aggregate(ctx, game, team.TeamID)
	if err != nil {
		return "", fmt.Errorf("aggregate features: %w", err)
	}

	odds, err := b.odds.EventOdds(ctx, game.EventID)
	if err != nil {
		return "", fmt.Errorf("event odds: %w", err)
	}

	suggestions := suggest.SuggestBets(bundle, odds)

	return Render(bundle, odds, suggestions), nil
}

// Render formats the aggregated features, odds and suggestions into the
// ordered plain-text report. Every absent upstream value becomes an
// explanatory line; nothing here can fail on missing data.
func Render(f models.FeatureBundle, odds *models.EventOdds, suggestions []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Team IDs:\n")
	fmt.Fprintf(&sb, "- %s: %s\n", f.TeamName, f.TeamID)

	fmt.Fprintf(&sb, "\nNext Game:\n")
	fmt.Fprintf(&sb, "- %s's next game is %s against the %s (Team ID: %s)\n",
		f.TeamName, f.Side, f.OpponentName, f.OpponentID)
	fmt.Fprintf(&sb, "  Global Event ID: %s\n", f.Game.GlobalEventID)
	fmt.Fprintf(&sb, "  Event ID: %s\n", f.Game.EventID)
	fmt.Fprintf(&sb, "  Date: %s\n", f.Game.Date.Format(time.RFC3339))
	fmt.Fprintf(&sb, "  Home Team ID: %s\n", f.Game.HomeTeamID)
	fmt.Fprintf(&sb, "  Away Team ID: %s\n", f.Game.AwayTeamID)

	writeSeasonKPIs(&sb, f.TeamName, f.Side, f.TeamContext)
	writeSeasonKPIs(&sb, f.OpponentName, f.Side.Opposite(), f.OpponentContext)

	fmt.Fprintf(&sb, "\n -- H2H KPIs --\n")
	fmt.Fprintf(&sb, "  Head-to-Head Stats %s vs %s:\n", f.TeamName, f.OpponentName)
	if f.HeadToHead != nil {
		fmt.Fprintf(&sb, "  Average Goals: %.2f\n", f.HeadToHead.AvgGoals)
		fmt.Fprintf(&sb, "  Average Shots: %.2f\n", f.HeadToHead.AvgShots)
		fmt.Fprintf(&sb, "  Average Penalty Minutes: %.2f\n", f.HeadToHead.AvgPenaltyMinutes)
	} else {
		fmt.Fprintf(&sb, "  No head-to-head history on record.\n")
	}

	fmt.Fprintf(&sb, "\n -- Previous Game Stats: %s vs %s --\n", f.TeamName, f.OpponentName)
	if len(f.MatchupLog) == 0 {
		fmt.Fprintf(&sb, "  No previous games on record.\n")
	}
	for _, g := range f.MatchupLog {
		fmt.Fprintf(&sb, "  Game ID: %s, %s Goals: %d, Shots: %d; %s Goals: %d, Shots: %d\n",
			g.EventID, f.TeamName, g.TeamGoals, g.TeamShots, f.OpponentName, g.OppGoals, g.OppShots)
	}

	writeFormKPIs(&sb, f.TeamName, f.TeamForm)
	writeFormKPIs(&sb, f.OpponentName, f.OpponentForm)

	fmt.Fprintf(&sb, "\nOdds Information:\n")
	writeOdds(&sb, odds)

	fmt.Fprintf(&sb, "\nBet Suggestions:\n")
	for _, s := range suggestions {
		fmt.Fprintf(&sb, "- %s\n", s)
	}

	return sb.String()
}

func writeSeasonKPIs(sb *strings.Builder, name string, side models.Side, avg *models.StatAverages) {
	fmt.Fprintf(sb, "\n -- %s KPIs --\n", name)
	if avg == nil {
		fmt.Fprintf(sb, "  No %s games on record for season averages.\n", side)
		return
	}
	fmt.Fprintf(sb, "  Average Goals: %.2f\n", avg.Goals)
	fmt.Fprintf(sb, "  Average Shots: %.2f\n", avg.Shots)
	fmt.Fprintf(sb, "  Average Powerplays: %.2f\n", avg.Powerplays)
	fmt.Fprintf(sb, "  Average Penalty Minutes: %.2f\n", avg.PenaltyMinutes)
}

func writeFormKPIs(sb *strings.Builder, name string, avg models.StatAverages) {
	fmt.Fprintf(sb, "\n -- %s Last 10 Games Stats --\n", name)
	fmt.Fprintf(sb, "  Average Goals: %.2f\n", avg.Goals)
	fmt.Fprintf(sb, "  Average Shots: %.2f\n", avg.Shots)
	fmt.Fprintf(sb, "  Average Powerplays: %.2f\n", avg.Powerplays)
	fmt.Fprintf(sb, "  Average Penalty Minutes: %.2f\n", avg.PenaltyMinutes)
}

// writeOdds dumps every present market, field by field. Absent markets and
// unpublished prices render as explicit lines instead of zeros.
func writeOdds(sb *strings.Builder, odds *models.EventOdds) {
	if odds == nil {
		fmt.Fprintf(sb, "- No odds on record for this event.\n")
		return
	}

	any := false

	if odds.Winner != nil {
		any = true
		fmt.Fprintf(sb, "- winner_odds:\n")
		fmt.Fprintf(sb, "  home_winner_odds: %s\n", fmtPrice(odds.Winner.HomePrice))
		fmt.Fprintf(sb, "  away_winner_odds: %s\n", fmtPrice(odds.Winner.AwayPrice))
	}

	if odds.Spread != nil {
		any = true
		fmt.Fprintf(sb, "- spread_odds:\n")
		fmt.Fprintf(sb, "  home_spread: %s\n", fmtPrice(odds.Spread.HomeSpread))
		fmt.Fprintf(sb, "  home_spread_odds: %s\n", fmtPrice(odds.Spread.HomePrice))
		fmt.Fprintf(sb, "  away_spread: %s\n", fmtPrice(odds.Spread.AwaySpread))
		fmt.Fprintf(sb, "  away_spread_odds: %s\n", fmtPrice(odds.Spread.AwayPrice))
	}

	if odds.Total != nil {
		any = true
		fmt.Fprintf(sb, "- total_odds:\n")
		fmt.Fprintf(sb, "  game_total: %s\n", fmtPrice(odds.Total.Line))
		fmt.Fprintf(sb, "  game_over_odds: %s\n", fmtPrice(odds.Total.OverPrice))
		fmt.Fprintf(sb, "  game_under_odds: %s\n", fmtPrice(odds.Total.UnderPrice))
	}

	if odds.HomeTotal != nil {
		any = true
		fmt.Fprintf(sb, "- home_total_odds:\n")
		fmt.Fprintf(sb, "  home_total: %s\n", fmtPrice(odds.HomeTotal.Line))
		fmt.Fprintf(sb, "  home_over_odds: %s\n", fmtPrice(odds.HomeTotal.OverPrice))
		fmt.Fprintf(sb, "  home_under_odds: %s\n", fmtPrice(odds.HomeTotal.UnderPrice))
	}

	if odds.AwayTotal != nil {
		any = true
		fmt.Fprintf(sb, "- away_total_odds:\n")
		fmt.Fprintf(sb, "  away_total: %s\n", fmtPrice(odds.AwayTotal.Line))
		fmt.Fprintf(sb, "  away_over_odds: %s\n", fmtPrice(odds.AwayTotal.OverPrice))
		fmt.Fprintf(sb, "  away_under_odds: %s\n", fmtPrice(odds.AwayTotal.UnderPrice))
	}

	if !any {
		fmt.Fprintf(sb, "- No odds on record for this event.\n")
	}
}

func fmtPrice(v *float64) string {
	if v == nil {
		return "not available"
	}
	return fmt.Sprintf("%.2f", *v)
}
