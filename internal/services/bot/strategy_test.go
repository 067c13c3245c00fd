package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blockgame-go/internal/dependencies/mocks"
	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/placement"
	"github.com/mcoot/blockgame-go/internal/testutil"
)

var (
	mono   = model.MustShape("mono", model.Offset{})
	domino = model.MustShape("domino-h", model.Offset{}, model.Offset{DX: 1})
	square = model.MustShape("square-2",
		model.Offset{}, model.Offset{DX: 1}, model.Offset{DY: 1}, model.Offset{DX: 1, DY: 1})
)

func sessionWith(grid *model.Grid, shapes ...model.Shape) *model.Session {
	s := &model.Session{ID: "s1", State: model.SessionStatePlaying, Grid: grid}
	for i, shape := range shapes {
		s.Batch = append(s.Batch, model.Piece{ID: model.NewPieceID(i + 1), Shape: shape})
	}
	return s
}

func TestLegalMovesOrder(t *testing.T) {
	grid := testutil.GridFromRows(
		"..",
		"#.",
	)
	moves := legalMoves(sessionWith(grid, domino, mono))

	assert.Equal(t, []Move{
		{PieceID: "p1", Origin: model.Position{X: 0, Y: 0}},
		{PieceID: "p2", Origin: model.Position{X: 0, Y: 0}},
		{PieceID: "p2", Origin: model.Position{X: 1, Y: 0}},
		{PieceID: "p2", Origin: model.Position{X: 1, Y: 1}},
	}, moves)
}

func TestRandomStrategyPicksQueuedMove(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(2)
	grid := testutil.GridFromRows(
		"..",
		"#.",
	)

	move, ok := NewRandomStrategy(rnd).ChooseMove(sessionWith(grid, domino, mono))

	require.True(t, ok)
	assert.Equal(t, Move{PieceID: "p2", Origin: model.Position{X: 1, Y: 0}}, move)
}

func TestRandomStrategyNoMove(t *testing.T) {
	grid := testutil.FullGridExcept(3, model.Position{X: 1, Y: 1})

	_, ok := NewRandomStrategy(mocks.NewMockRandom()).ChooseMove(sessionWith(grid, domino, square))

	assert.False(t, ok)
}

func TestGreedyPrefersClearingMove(t *testing.T) {
	grid := testutil.GridFromRows(
		"....",
		"....",
		".#..",
		"#..#",
	)
	greedy := NewGreedyStrategy(placement.New(testutil.NopLogger()))

	move, ok := greedy.ChooseMove(sessionWith(grid, square, domino))

	require.True(t, ok)
	assert.Equal(t, Move{PieceID: "p2", Origin: model.Position{X: 1, Y: 3}}, move)
}

func TestGreedyAvoidsHoles(t *testing.T) {
	grid := testutil.GridFromRows(
		"....",
		"....",
		"##..",
		"#.#.",
	)
	greedy := NewGreedyStrategy(placement.New(testutil.NopLogger()))

	move, ok := greedy.ChooseMove(sessionWith(grid, mono))

	// (1,3) is walled in; every other cell leaves it isolated
	require.True(t, ok)
	assert.Equal(t, Move{PieceID: "p1", Origin: model.Position{X: 1, Y: 3}}, move)
}

func TestGreedyDoesNotMutateGrid(t *testing.T) {
	grid := testutil.GridFromRows(
		"###.",
		"....",
		"....",
		"....",
	)
	before := grid.Snapshot()
	greedy := NewGreedyStrategy(placement.New(testutil.NopLogger()))

	_, ok := greedy.ChooseMove(sessionWith(grid, mono, domino))

	require.True(t, ok)
	assert.Equal(t, before, grid.Snapshot())
}

func TestCountHoles(t *testing.T) {
	grid := testutil.GridFromRows(
		"#.#",
		"###",
		"..#",
	)
	assert.Equal(t, 1, countHoles(grid))
}
