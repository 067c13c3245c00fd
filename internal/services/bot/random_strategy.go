package bot

import (
	"github.com/mcoot/blockgame-go/internal/dependencies/random"
	"github.com/mcoot/blockgame-go/internal/model"
)

// RandomStrategy picks uniformly among all legal moves
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove returns a random legal move
func (s *RandomStrategy) ChooseMove(session *model.Session) (Move, bool) {
	moves := legalMoves(session)
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[s.random.Intn(len(moves))], true
}
