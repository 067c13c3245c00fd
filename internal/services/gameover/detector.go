package gameover

import (
	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/fit"
)

// Detector decides whether a session has reached a terminal state
type Detector struct{}

// New creates a new Detector
func New() *Detector {
	return &Detector{}
}

// IsGameOver returns true if no piece in the batch has a legal origin. An
// empty batch is awaiting a refill and is never game over.
func (d *Detector) IsGameOver(grid *model.Grid, batch []model.Piece) bool {
	if len(batch) == 0 {
		return false
	}
	return !fit.AnyFits(grid, batch)
}

// IsWon returns true once every seeded obstacle has been cleared
func (d *Detector) IsWon(session *model.Session) bool {
	return session.IsObstacleMode() && session.ObstaclesRemaining() <= 0
}

// Evaluate moves a playing session into its terminal state if one applies
// and returns the resulting state. A win takes precedence over game over.
func (d *Detector) Evaluate(session *model.Session) model.SessionState {
	if session.IsTerminal() {
		return session.State
	}

	switch {
	case d.IsWon(session):
		session.State = model.SessionStateWon
	case d.IsGameOver(session.Grid, session.Batch):
		session.State = model.SessionStateGameOver
	}
	return session.State
}
