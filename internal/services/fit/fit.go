// Package fit answers placement-legality questions against a grid.
// Every function here is read-only.
package fit

import "github.com/mcoot/blockgame-go/internal/model"

// CanPlace returns true if every cell of shape, anchored at origin, is
// inside the grid and empty. It stops at the first violation.
func CanPlace(grid *model.Grid, shape model.Shape, origin model.Position) bool {
	if shape.Size() == 0 {
		return false
	}
	for _, off := range shape.Cells {
		pos := origin.Add(off)
		if !grid.InBounds(pos) || grid.IsOccupied(pos) {
			return false
		}
	}
	return true
}

// CanPlaceAnywhere returns true if some origin on the grid accepts shape
func CanPlaceAnywhere(grid *model.Grid, shape model.Shape) bool {
	_, ok := FirstFit(grid, shape)
	return ok
}

// FirstFit returns the first legal origin in row-major order
func FirstFit(grid *model.Grid, shape model.Shape) (model.Position, bool) {
	// Origins past size-width or size-height can never fit
	maxX := grid.Size - shape.Width()
	maxY := grid.Size - shape.Height()
	for y := 0; y <= maxY; y++ {
		for x := 0; x <= maxX; x++ {
			origin := model.Position{X: x, Y: y}
			if CanPlace(grid, shape, origin) {
				return origin, true
			}
		}
	}
	return model.Position{}, false
}

// LegalOrigins returns every origin that accepts shape, in row-major order
func LegalOrigins(grid *model.Grid, shape model.Shape) []model.Position {
	var result []model.Position
	maxX := grid.Size - shape.Width()
	maxY := grid.Size - shape.Height()
	for y := 0; y <= maxY; y++ {
		for x := 0; x <= maxX; x++ {
			origin := model.Position{X: x, Y: y}
			if CanPlace(grid, shape, origin) {
				result = append(result, origin)
			}
		}
	}
	return result
}

// AnyFits returns true if at least one of the pieces has a legal origin
func AnyFits(grid *model.Grid, pieces []model.Piece) bool {
	for _, p := range pieces {
		if CanPlaceAnywhere(grid, p.Shape) {
			return true
		}
	}
	return false
}
