package bot

import (
	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/placement"
)

// GreedyStrategy looks one move ahead. It prefers the move clearing the most
// lines, then the one leaving the fewest isolated holes, then the one filling
// the most cells. Ties go to the earliest move in scan order.
type GreedyStrategy struct {
	engine *placement.Engine
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(engine *placement.Engine) *GreedyStrategy {
	return &GreedyStrategy{engine: engine}
}

type evaluation struct {
	lines int
	holes int
	cells int
}

func (e evaluation) beats(o evaluation) bool {
	if e.lines != o.lines {
		return e.lines > o.lines
	}
	if e.holes != o.holes {
		return e.holes < o.holes
	}
	return e.cells > o.cells
}

// ChooseMove returns the best move by one-ply evaluation
func (s *GreedyStrategy) ChooseMove(session *model.Session) (Move, bool) {
	var (
		best     Move
		bestEval evaluation
		found    bool
	)

	for _, move := range legalMoves(session) {
		piece, _ := session.FindPiece(move.PieceID)
		eval := s.evaluate(session.Grid, piece.Shape, move.Origin)
		if !found || eval.beats(bestEval) {
			best, bestEval, found = move, eval, true
		}
	}
	return best, found
}

// evaluate plays the move on a copy of the grid
func (s *GreedyStrategy) evaluate(grid *model.Grid, shape model.Shape, origin model.Position) evaluation {
	sim := grid.Clone()
	for _, off := range shape.Cells {
		sim.SetFilled(origin.Add(off))
	}
	cleared := s.engine.DetectAndClearLines(sim)

	return evaluation{
		lines: cleared.LinesCleared,
		holes: countHoles(sim),
		cells: shape.Size(),
	}
}

// countHoles counts empty cells with no empty orthogonal neighbour
func countHoles(grid *model.Grid) int {
	holes := 0
	neighbours := []model.Offset{{DX: 1}, {DX: -1}, {DY: 1}, {DY: -1}}
	for y := 0; y < grid.Size; y++ {
		for x := 0; x < grid.Size; x++ {
			pos := model.Position{X: x, Y: y}
			if grid.IsOccupied(pos) {
				continue
			}
			isolated := true
			for _, n := range neighbours {
				if !grid.IsOccupied(pos.Add(n)) {
					isolated = false
					break
				}
			}
			if isolated {
				holes++
			}
		}
	}
	return holes
}
