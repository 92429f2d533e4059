package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkjoshua/boltstheover/pkg/models"
)

// OddsStore defines the read-only odds repository
type OddsStore interface {
	EventOdds(ctx context.Context, eventID string) (*models.EventOdds, error)
}

// OddsClient implements OddsStore against Postgres
type OddsClient struct {
	db *sql.DB
}

// NewOddsClient creates an odds repository over an open connection
func NewOddsClient(database *sql.DB) *OddsClient {
	return &OddsClient{db: database}
}

// EventOdds fetches every market persisted for the event. Each market is
// optional: a missing row leaves the corresponding sub-record nil, which
// downstream consumers must surface as "not available" rather than zero.
func (c *OddsClient) EventOdds(ctx context.Context, eventID string) (*models.EventOdds, error) {
	odds := &models.EventOdds{EventID: eventID}

	winner, err := c.winnerOdds(ctx, eventID)
	if err != nil {
		return nil, err
	}
	odds.Winner = winner

	spread, err := c.spreadOdds(ctx, eventID)
	if err != nil {
		return nil, err
	}
	odds.Spread = spread

	total, err := c.totalOdds(ctx, eventID, "total_odds", "game_total", "game_over_odds", "game_under_odds")
	if err != nil {
		return nil, err
	}
	odds.Total = total

	homeTotal, err := c.totalOdds(ctx, eventID, "home_total_odds", "home_total", "home_over_odds", "home_under_odds")
	if err != nil {
		return nil, err
	}
	odds.HomeTotal = homeTotal

	awayTotal, err := c.totalOdds(ctx, eventID, "away_total_odds", "away_total", "away_over_odds", "away_under_odds")
	if err != nil {
		return nil, err
	}
	odds.AwayTotal = awayTotal

	return odds, nil
}

func (c *OddsClient) winnerOdds(ctx context.Context, eventID string) (*models.WinnerOdds, error) {
	query := `
		SELECT book_id, home_winner_odds, away_winner_odds
		FROM winner_odds
		WHERE event_id = $1
		LIMIT 1
	`

	var o models.WinnerOdds
	var home, away sql.NullFloat64
	err := c.db.QueryRowContext(ctx, query, eventID).Scan(&o.BookID, &home, &away)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query winner odds: %w", err)
	}

	o.HomePrice = floatPtr(home)
	o.AwayPrice = floatPtr(away)
	return &o, nil
}

func (c *OddsClient) spreadOdds(ctx context.Context, eventID string) (*models.SpreadOdds, error) {
	query := `
		SELECT book_id, home_spread, home_spread_odds, away_spread, away_spread_odds
		FROM spread_odds
		WHERE event_id = $1
		LIMIT 1
	`

	var o models.SpreadOdds
	var homeSpread, homePrice, awaySpread, awayPrice sql.NullFloat64
	err := c.db.QueryRowContext(ctx, query, eventID).Scan(&o.BookID, &homeSpread, &homePrice, &awaySpread, &awayPrice)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query spread odds: %w", err)
	}

	o.HomeSpread = floatPtr(homeSpread)
	o.HomePrice = floatPtr(homePrice)
	o.AwaySpread = floatPtr(awaySpread)
	o.AwayPrice = floatPtr(awayPrice)
	return &o, nil
}

// totalOdds reads one of the three over/under tables; they share a shape
// and differ only in table and column names.
func (c *OddsClient) totalOdds(ctx context.Context, eventID, table, lineCol, overCol, underCol string) (*models.TotalOdds, error) {
	query := fmt.Sprintf(`
		SELECT book_id, %s, %s, %s
		FROM %s
		WHERE event_id = $1
		LIMIT 1
	`, lineCol, overCol, underCol, table)

	var o models.TotalOdds
	var line, over, under sql.NullFloat64
	err := c.db.QueryRowContext(ctx, query, eventID).Scan(&o.BookID, &line, &over, &under)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}

	o.Line = floatPtr(line)
	o.OverPrice = floatPtr(over)
	o.UnderPrice = floatPtr(under)
	return &o, nil
}
