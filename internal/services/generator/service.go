package generator

import (
	"log/slog"

	"github.com/mcoot/blockgame-go/internal/dependencies/random"
	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/fit"
	"github.com/mcoot/blockgame-go/internal/services/shapes"
)

// MaxObstacleAttempts caps random picks when seeding obstacles
const MaxObstacleAttempts = 200

// BatchRequest describes one batch to deal
type BatchRequest struct {
	Size     int
	Smart    bool // Guarantee the first piece fits the current grid
	FirstSeq int  // Sequence number of the first piece, for IDs
}

// Service deals pieces from a shape catalog
type Service struct {
	catalog    *shapes.Catalog
	difficulty model.DifficultyConfig
	random     random.Random
	logger     *slog.Logger
}

// New creates a new generator Service
func New(catalog *shapes.Catalog, difficulty model.DifficultyConfig, rng random.Random, logger *slog.Logger) *Service {
	return &Service{
		catalog:    catalog,
		difficulty: difficulty,
		random:     rng,
		logger:     logger.With(slog.String("catalog", catalog.Name())),
	}
}

// Catalog returns the catalog pieces are drawn from
func (s *Service) Catalog() *shapes.Catalog {
	return s.catalog
}

// GenerateBatch deals req.Size pieces against the current grid. The grid is
// not modified.
func (s *Service) GenerateBatch(grid *model.Grid, req BatchRequest) []model.Piece {
	if req.Size <= 0 {
		return nil
	}

	pool := s.drawPool(grid)
	batch := make([]model.Piece, 0, req.Size)

	if req.Smart {
		batch = append(batch, model.Piece{
			ID:    model.NewPieceID(req.FirstSeq),
			Shape: s.guaranteedShape(grid, pool),
		})
	}

	for len(batch) < req.Size {
		shape := pool[s.random.Intn(len(pool))]
		batch = append(batch, model.Piece{
			ID:    model.NewPieceID(req.FirstSeq + len(batch)),
			Shape: shape,
		})
	}

	return batch
}

// drawPool returns the shapes eligible for a draw. When the grid is crowded
// and difficulty scaling is on, only small shapes are eligible.
func (s *Service) drawPool(grid *model.Grid) []model.Shape {
	d := s.difficulty
	if d.SmallShapeThreshold <= 0 || grid.EmptyCount() > d.SmallShapeThreshold {
		return s.catalog.Shapes()
	}

	small := s.catalog.Filter(func(shape model.Shape) bool {
		return shape.Size() <= d.SmallShapeMaxCells
	})
	if len(small) == 0 {
		return s.catalog.Shapes()
	}
	return small
}

// guaranteedShape picks a random shape that fits somewhere on the grid,
// searching the draw pool before the full catalog
func (s *Service) guaranteedShape(grid *model.Grid, pool []model.Shape) model.Shape {
	if shape, ok := s.firstFitting(grid, pool); ok {
		return shape
	}
	if shape, ok := s.firstFitting(grid, s.catalog.Shapes()); ok {
		return shape
	}

	// A single cell fits whenever any cell is empty
	fallback := shapes.Monomino
	if grid.EmptyCount() == 0 {
		fallback = s.catalog.Smallest()
	}
	s.logger.Debug("no catalog shape fits, dealing fallback",
		slog.String("shape", string(fallback.ID)),
		slog.Int("empty_cells", grid.EmptyCount()),
	)
	return fallback
}

func (s *Service) firstFitting(grid *model.Grid, candidates []model.Shape) (model.Shape, bool) {
	for _, i := range random.Perm(s.random, len(candidates)) {
		if fit.CanPlaceAnywhere(grid, candidates[i]) {
			return candidates[i], true
		}
	}
	return model.Shape{}, false
}

// PlaceObstacles marks up to count random empty cells as obstacles. It gives
// up after MaxObstacleAttempts picks, so fewer may be placed.
func (s *Service) PlaceObstacles(grid *model.Grid, count int) []model.Position {
	var placed []model.Position
	cells := grid.Size * grid.Size

	for attempt := 0; attempt < MaxObstacleAttempts && len(placed) < count; attempt++ {
		idx := s.random.Intn(cells)
		pos := model.Position{X: idx % grid.Size, Y: idx / grid.Size}
		if grid.IsOccupied(pos) {
			continue
		}
		grid.SetObstacle(pos)
		placed = append(placed, pos)
	}

	if len(placed) < count {
		s.logger.Warn("obstacle seeding fell short",
			slog.Int("requested", count),
			slog.Int("placed", len(placed)),
		)
	}
	return placed
}
