package bot

import (
	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/fit"
)

// Strategy names
const (
	StrategyRandom = "random"
	StrategyGreedy = "greedy"
)

// Move is one placement choice
type Move struct {
	PieceID model.PieceID
	Origin  model.Position
}

// Strategy defines how a bot chooses its next placement
type Strategy interface {
	// ChooseMove returns a legal move, or false if no batch piece fits
	ChooseMove(session *model.Session) (Move, bool)
}

// legalMoves lists every legal (piece, origin) pair in batch then row-major order
func legalMoves(session *model.Session) []Move {
	var moves []Move
	for _, p := range session.Batch {
		for _, origin := range fit.LegalOrigins(session.Grid, p.Shape) {
			moves = append(moves, Move{PieceID: p.ID, Origin: origin})
		}
	}
	return moves
}
