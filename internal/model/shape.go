package model

import (
	"fmt"
	"sort"
	"strings"
)

// Offset is a cell position relative to a piece's anchor
type Offset struct {
	DX int
	DY int
}

// ShapeID names a shape within a catalog
type ShapeID string

// Shape is an immutable footprint of cell offsets, normalized so the
// smallest DX and DY are both 0. Cells are sorted row-major.
type Shape struct {
	ID    ShapeID
	Cells []Offset
}

// NewShape normalizes the given offsets into a Shape.
// Returns ErrEmptyShape or ErrDuplicateCells for invalid input.
func NewShape(id ShapeID, offsets ...Offset) (Shape, error) {
	if len(offsets) == 0 {
		return Shape{}, fmt.Errorf("%w: %s", ErrEmptyShape, id)
	}

	minX, minY := offsets[0].DX, offsets[0].DY
	for _, o := range offsets[1:] {
		minX = min(minX, o.DX)
		minY = min(minY, o.DY)
	}

	seen := make(map[Offset]bool, len(offsets))
	cells := make([]Offset, 0, len(offsets))
	for _, o := range offsets {
		n := Offset{DX: o.DX - minX, DY: o.DY - minY}
		if seen[n] {
			return Shape{}, fmt.Errorf("%w: %s", ErrDuplicateCells, id)
		}
		seen[n] = true
		cells = append(cells, n)
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].DY != cells[j].DY {
			return cells[i].DY < cells[j].DY
		}
		return cells[i].DX < cells[j].DX
	})

	return Shape{ID: id, Cells: cells}, nil
}

// MustShape is NewShape for static catalog data
func MustShape(id ShapeID, offsets ...Offset) Shape {
	s, err := NewShape(id, offsets...)
	if err != nil {
		panic(err)
	}
	return s
}

// ShapeFromMatrix builds a Shape from rows of 0/1 values, where
// matrix[row][col] != 0 marks an occupied cell
func ShapeFromMatrix(id ShapeID, matrix [][]int) (Shape, error) {
	var offsets []Offset
	for y, row := range matrix {
		for x, v := range row {
			if v != 0 {
				offsets = append(offsets, Offset{DX: x, DY: y})
			}
		}
	}
	return NewShape(id, offsets...)
}

// Size returns the number of cells in the shape
func (s Shape) Size() int {
	return len(s.Cells)
}

// Width returns the number of columns spanned by the shape
func (s Shape) Width() int {
	w := 0
	for _, c := range s.Cells {
		w = max(w, c.DX+1)
	}
	return w
}

// Height returns the number of rows spanned by the shape
func (s Shape) Height() int {
	h := 0
	for _, c := range s.Cells {
		h = max(h, c.DY+1)
	}
	return h
}

// Matrix returns the shape as rows of booleans for rendering
func (s Shape) Matrix() [][]bool {
	matrix := make([][]bool, s.Height())
	for y := range matrix {
		matrix[y] = make([]bool, s.Width())
	}
	for _, c := range s.Cells {
		matrix[c.DY][c.DX] = true
	}
	return matrix
}

// Footprint returns a canonical string for the occupied cells, ignoring ID.
// Two shapes with equal footprints cover the same cells.
func (s Shape) Footprint() string {
	var b strings.Builder
	for i, c := range s.Cells {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%d,%d", c.DX, c.DY)
	}
	return b.String()
}

// PieceID uniquely identifies a piece within a session
type PieceID string

// NewPieceID formats the n-th piece dealt in a session
func NewPieceID(seq int) PieceID {
	return PieceID(fmt.Sprintf("p%d", seq))
}

// Piece is one placeable instance of a shape offered to the player
type Piece struct {
	ID    PieceID
	Shape Shape
}
