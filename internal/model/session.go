package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// SessionState is the phase of a session
type SessionState string

const (
	SessionStatePlaying  SessionState = "playing"
	SessionStateGameOver SessionState = "game_over" // No batch piece fits anywhere
	SessionStateWon      SessionState = "won"       // Every obstacle cleared
)

// ScoreState holds the score, combo streak and coin bookkeeping
type ScoreState struct {
	Score        int
	Combo        int
	Best         int // Highest score seen for the variant, this session included
	LinesCleared int // Total over the session
	CoinsSpent   int
}

// BoosterState tracks the active score multiplier window
type BoosterState struct {
	ActiveUntil time.Time // Zero when never activated
}

// Session is the aggregate owning one game's grid, batch and score
type Session struct {
	ID     SessionID
	Config SessionConfig
	State  SessionState

	Grid  *Grid
	Batch []Piece

	// NextPieceSeq numbers the next piece dealt
	NextPieceSeq int
	// Rounds counts committed placements
	Rounds int
	// PendingResolve is set between a placement and its clear pass
	PendingResolve bool

	Score   ScoreState
	Booster BoosterState

	ObstaclesPlaced  int
	ObstaclesCleared int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true once the session has been lost or won
func (s *Session) IsTerminal() bool {
	return s.State == SessionStateGameOver || s.State == SessionStateWon
}

// IsObstacleMode returns true if obstacles were seeded at start
func (s *Session) IsObstacleMode() bool {
	return s.ObstaclesPlaced > 0
}

// ObstaclesRemaining returns how many seeded obstacles are still on the grid
func (s *Session) ObstaclesRemaining() int {
	return s.ObstaclesPlaced - s.ObstaclesCleared
}

// FindPiece returns the batch piece with the given ID
func (s *Session) FindPiece(id PieceID) (Piece, bool) {
	for _, p := range s.Batch {
		if p.ID == id {
			return p, true
		}
	}
	return Piece{}, false
}

// RemovePiece drops a piece from the batch, keeping the order of the rest
func (s *Session) RemovePiece(id PieceID) bool {
	for i, p := range s.Batch {
		if p.ID == id {
			s.Batch = append(s.Batch[:i:i], s.Batch[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	if s.Grid != nil {
		c.Grid = s.Grid.Clone()
	}
	c.Batch = make([]Piece, len(s.Batch))
	copy(c.Batch, s.Batch)
	return &c
}
