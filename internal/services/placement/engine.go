package placement

import (
	"fmt"
	"log/slog"

	"github.com/kamstrup/intmap"

	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/fit"
)

// Engine commits placements and resolves line clears
type Engine struct {
	logger *slog.Logger
}

// New creates a new placement Engine
func New(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// TryPlace places a batch piece at origin. On error nothing is mutated.
// On success every cell of the shape is filled and the piece leaves the
// batch. Points are left for the caller to fill in.
func (e *Engine) TryPlace(session *model.Session, pieceID model.PieceID, origin model.Position) (model.PlacementResult, error) {
	piece, ok := session.FindPiece(pieceID)
	if !ok {
		return model.PlacementResult{}, fmt.Errorf("%w: %s", model.ErrPieceNotFound, pieceID)
	}

	if !fit.CanPlace(session.Grid, piece.Shape, origin) {
		return model.PlacementResult{}, fmt.Errorf("%w: %s at (%d,%d)",
			model.ErrInvalidPlacement, piece.Shape.ID, origin.X, origin.Y)
	}

	filled := make([]model.Position, 0, piece.Shape.Size())
	for _, off := range piece.Shape.Cells {
		pos := origin.Add(off)
		session.Grid.SetFilled(pos)
		filled = append(filled, pos)
	}
	session.RemovePiece(pieceID)

	e.logger.Debug("piece placed",
		slog.String("session_id", string(session.ID)),
		slog.String("piece_id", string(pieceID)),
		slog.String("shape", string(piece.Shape.ID)),
		slog.Int("x", origin.X),
		slog.Int("y", origin.Y),
	)

	return model.PlacementResult{
		PieceID: pieceID,
		ShapeID: piece.Shape.ID,
		Origin:  origin,
		Filled:  filled,
	}, nil
}

// DetectAndClearLines empties every full row and column. All full lines are
// found before any cell changes, and a cell on both a full row and a full
// column is cleared once.
func (e *Engine) DetectAndClearLines(grid *model.Grid) model.ClearResult {
	var result model.ClearResult

	for y := 0; y < grid.Size; y++ {
		if grid.RowFull(y) {
			result.Rows = append(result.Rows, y)
		}
	}
	for x := 0; x < grid.Size; x++ {
		if grid.ColFull(x) {
			result.Cols = append(result.Cols, x)
		}
	}
	result.LinesCleared = len(result.Rows) + len(result.Cols)
	if result.LinesCleared == 0 {
		return result
	}

	// Union of affected cells keyed by row-major index
	affected := intmap.New[int, model.Position](result.LinesCleared * grid.Size)
	add := func(pos model.Position) {
		idx := pos.Y*grid.Size + pos.X
		if _, seen := affected.Get(idx); seen {
			return
		}
		affected.Put(idx, pos)
		result.Cells = append(result.Cells, pos)
	}
	for _, y := range result.Rows {
		for x := 0; x < grid.Size; x++ {
			add(model.Position{X: x, Y: y})
		}
	}
	for _, x := range result.Cols {
		for y := 0; y < grid.Size; y++ {
			add(model.Position{X: x, Y: y})
		}
	}

	for _, pos := range result.Cells {
		if grid.Clear(pos) == model.CellObstacle {
			result.ObstaclesCleared++
		}
	}
	result.CellsCleared = affected.Len()

	return result
}

// ResolveSession clears full lines on the session grid and records any
// obstacles removed
func (e *Engine) ResolveSession(session *model.Session) model.ClearResult {
	result := e.DetectAndClearLines(session.Grid)
	session.ObstaclesCleared += result.ObstaclesCleared

	if result.LinesCleared > 0 {
		e.logger.Debug("lines cleared",
			slog.String("session_id", string(session.ID)),
			slog.Int("lines", result.LinesCleared),
			slog.Int("obstacles", result.ObstaclesCleared),
		)
	}
	return result
}
