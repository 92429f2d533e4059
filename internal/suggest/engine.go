package suggest

import (
	"fmt"

	"github.com/pkjoshua/boltstheover/pkg/models"
)

// Fixed user-facing messages. Callers and tests rely on these exact strings.
const (
	OddsNotOutMessage           = "Odds not out yet. Check back the day of or before the game."
	OverUnderUnavailableMessage = "Odds for Over/Under not available yet."
)

// Signal weights of the point model.
const (
	formGoalsWeight  = 2.0
	headToHeadBonus  = 5.0
	lastMeetingBonus = 3.0
	homeIceBonus     = 3.0
)

// Tally holds the intermediate point totals behind one scoring run,
// exposed for the report and for tests.
type Tally struct {
	TeamPoints     float64 `json:"team_points"`
	OpponentPoints float64 `json:"opponent_points"`
	PredictedTotal float64 `json:"predicted_total"`
}

// Result is the full outcome of one scoring run.
type Result struct {
	Tally   Tally  `json:"tally"`
	Favored string `json:"favored,omitempty"` // display name, empty on a tie
	Tied    bool   `json:"tied"`
	Parlay  string `json:"parlay"`
}

// Score applies the weighted point model to the feature bundle. It is a
// pure function: two calls over the same bundle produce identical tallies.
//
// Signals, summed before any comparison:
//   - recent-form average goals x2, each team to its own tally
//   - +5 when the combined head-to-head average goals strictly exceed the
//     combined average shots, to the queried team; otherwise the opponent.
//     The goals-vs-shots comparison is kept as observed upstream. No
//     head-to-head history means the signal contributes nothing to either.
//   - +3 to the winner of the most recent meeting, opponent on ties
//   - +3 to the home side
func Score(f models.FeatureBundle) Tally {
	var t Tally

	t.TeamPoints += f.TeamForm.Goals * formGoalsWeight
	t.OpponentPoints += f.OpponentForm.Goals * formGoalsWeight

	if f.HeadToHead != nil {
		if f.HeadToHead.AvgGoals > f.HeadToHead.AvgShots {
			t.TeamPoints += headToHeadBonus
		} else {
			t.OpponentPoints += headToHeadBonus
		}
	}

	if n := len(f.MatchupLog); n > 0 {
		last := f.MatchupLog[n-1]
		if last.TeamGoals > last.OppGoals {
			t.TeamPoints += lastMeetingBonus
		} else {
			t.OpponentPoints += lastMeetingBonus
		}
	}

	if f.Side == models.SideHome {
		t.TeamPoints += homeIceBonus
	} else {
		t.OpponentPoints += homeIceBonus
	}

	t.PredictedTotal = (f.TeamForm.Goals + f.OpponentForm.Goals) / 2
	if f.HeadToHead != nil {
		t.PredictedTotal += f.HeadToHead.AvgGoals
	}

	return t
}

// Evaluate runs the point model and renders the parlay sentence. The
// caller must have checked odds.WinnerPriced() first; Evaluate assumes the
// moneyline is published.
//
// Equal tallies are an explicit tie surfaced to the caller, not a silent
// lean toward either team.
func Evaluate(f models.FeatureBundle, odds *models.EventOdds) Result {
	res := Result{Tally: Score(f)}

	var winnerSentence string
	switch {
	case res.Tally.TeamPoints > res.Tally.OpponentPoints:
		res.Favored = f.TeamName
	case res.Tally.OpponentPoints > res.Tally.TeamPoints:
		res.Favored = f.OpponentName
	default:
		res.Tied = true
	}
	if res.Tied {
		winnerSentence = "Point totals are even; no winner pick."
	} else {
		winnerSentence = fmt.Sprintf("Bet on %s to win.", res.Favored)
	}

	var overUnderSentence string
	if odds != nil && odds.Total != nil && odds.Total.Line != nil {
		if res.Tally.PredictedTotal > *odds.Total.Line {
			overUnderSentence = "bet on the Over."
		} else {
			overUnderSentence = "bet on the Under."
		}
	} else {
		overUnderSentence = OverUnderUnavailableMessage
	}

	res.Parlay = fmt.Sprintf("Two-leg parlay suggestion: %s Also, %s", winnerSentence, overUnderSentence)
	return res
}

// SuggestBets produces the human-readable suggestion lines for one
// upcoming game. When the moneyline is not fully published the fixed
// "odds not out" line is the only output and no scoring runs at all.
func SuggestBets(f models.FeatureBundle, odds *models.EventOdds) []string {
	if !odds.WinnerPriced() {
		return []string{OddsNotOutMessage}
	}

	res := Evaluate(f, odds)
	return []string{res.Parlay}
}
