package models

// WinnerOdds is the moneyline market for an event. Prices are nil until the
// book publishes them; a half-published market is treated as absent by the
// suggestion engine.
type WinnerOdds struct {
	BookID    string   `json:"book_id,omitempty"`
	HomePrice *float64 `json:"home_winner_odds"`
	AwayPrice *float64 `json:"away_winner_odds"`
}

// SpreadOdds is the puck-line market: a line and a price per side.
type SpreadOdds struct {
	BookID     string   `json:"book_id,omitempty"`
	HomeSpread *float64 `json:"home_spread"`
	HomePrice  *float64 `json:"home_spread_odds"`
	AwaySpread *float64 `json:"away_spread"`
	AwayPrice  *float64 `json:"away_spread_odds"`
}

// TotalOdds is an over/under market: one line, two prices. It covers both
// the game total and the per-team totals.
type TotalOdds struct {
	BookID     string   `json:"book_id,omitempty"`
	Line       *float64 `json:"line"`
	OverPrice  *float64 `json:"over_odds"`
	UnderPrice *float64 `json:"under_odds"`
}

// EventOdds bundles every market persisted for one event. Each sub-record
// is nil when the book has not published that market yet; consumers must
// treat nil as "not available", never as zero.
type EventOdds struct {
	EventID   string      `json:"event_id"`
	Winner    *WinnerOdds `json:"winner_odds,omitempty"`
	Spread    *SpreadOdds `json:"spread_odds,omitempty"`
	Total     *TotalOdds  `json:"total_odds,omitempty"`
	HomeTotal *TotalOdds  `json:"home_total_odds,omitempty"`
	AwayTotal *TotalOdds  `json:"away_total_odds,omitempty"`
}

// WinnerPriced reports whether the moneyline market is fully published:
// the sub-record exists and both prices are set.
func (o *EventOdds) WinnerPriced() bool {
	return o != nil && o.Winner != nil && o.Winner.HomePrice != nil && o.Winner.AwayPrice != nil
}
