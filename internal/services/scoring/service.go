package scoring

import (
	"fmt"
	"time"

	"github.com/mcoot/blockgame-go/internal/dependencies/clock"
	"github.com/mcoot/blockgame-go/internal/model"
)

// Tracker converts placement and clear events into score, and owns the
// combo streak, the best score and the coin booster
type Tracker struct {
	clock clock.Clock
}

// New creates a new score Tracker
func New(clock clock.Clock) *Tracker {
	return &Tracker{clock: clock}
}

// Reset sets the score state for a fresh session, keeping the best score
func (t *Tracker) Reset(session *model.Session, best int) {
	session.Score = model.ScoreState{
		Combo: session.Config.Combo.BaseValue,
		Best:  best,
	}
	session.Booster = model.BoosterState{}
}

// OnPlacement awards points for the cells just filled and returns them
func (t *Tracker) OnPlacement(session *model.Session, cellsFilled int) int {
	points := cellsFilled * session.Config.Scoring.CellPoints * t.boost(session)
	t.add(session, points)
	return points
}

// OnClear advances the combo streak and awards the line reward. A round with
// no lines resets the streak to its base value. The returned multiplier is
// the combo factor used, not counting the booster.
//
// With AppliesBeforeIncrement and a BaseValue of 0, the first clear of a
// streak multiplies by 0 and scores nothing.
func (t *Tracker) OnClear(session *model.Session, linesCleared int) (points, multiplier int) {
	combo := session.Config.Combo
	before := session.Score.Combo

	if linesCleared <= 0 {
		session.Score.Combo = combo.BaseValue
		return 0, 1
	}

	session.Score.Combo = before + 1
	session.Score.LinesCleared += linesCleared

	multiplier = 1
	if combo.Enabled {
		multiplier = session.Score.Combo
		if combo.AppliesBeforeIncrement {
			multiplier = before
		}
	}

	points = linesCleared * session.Config.Scoring.LinePoints * multiplier * t.boost(session)
	t.add(session, points)
	return points, multiplier
}

func (t *Tracker) add(session *model.Session, points int) {
	if points <= 0 {
		return
	}
	session.Score.Score += points
	if session.Score.Score > session.Score.Best {
		session.Score.Best = session.Score.Score
	}
}

// Coins returns the coins available to spend
func (t *Tracker) Coins(session *model.Session) int {
	b := session.Config.Booster
	if !b.Enabled || b.CoinScore <= 0 {
		return 0
	}
	return session.Score.Score/b.CoinScore - session.Score.CoinsSpent
}

// BoosterActive returns true while the score multiplier window is open
func (t *Tracker) BoosterActive(session *model.Session) bool {
	return t.BoosterRemaining(session) > 0
}

// BoosterRemaining returns how long the booster stays active
func (t *Tracker) BoosterRemaining(session *model.Session) time.Duration {
	if !session.Config.Booster.Enabled {
		return 0
	}
	return max(0, t.clock.Until(session.Booster.ActiveUntil))
}

// ActivateBooster spends coins to open the multiplier window. Activating
// while already active restarts the window.
func (t *Tracker) ActivateBooster(session *model.Session) error {
	b := session.Config.Booster
	if !b.Enabled {
		return model.ErrBoosterDisabled
	}

	if coins := t.Coins(session); coins < b.Cost {
		return fmt.Errorf("%w: have %d, need %d", model.ErrInsufficientCoins, coins, b.Cost)
	}

	session.Score.CoinsSpent += b.Cost
	session.Booster.ActiveUntil = t.clock.Now().Add(b.Duration)
	return nil
}

func (t *Tracker) boost(session *model.Session) int {
	if t.BoosterActive(session) {
		return session.Config.Booster.Multiplier
	}
	return 1
}
