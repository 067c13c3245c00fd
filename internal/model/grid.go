package model

import "fmt"

// CellState is the occupancy of a single grid cell
type CellState int

const (
	CellEmpty    CellState = iota // Free for placement
	CellFilled                    // Filled by a placed piece
	CellObstacle                  // Pre-placed, removable only by a line clear
)

// String returns a short name for the state
func (c CellState) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellFilled:
		return "filled"
	case CellObstacle:
		return "obstacle"
	default:
		return fmt.Sprintf("CellState(%d)", int(c))
	}
}

// Position identifies a cell on the grid
type Position struct {
	X int // 0-indexed column from left
	Y int // 0-indexed row from top
}

// Add returns the position shifted by the given offset
func (p Position) Add(o Offset) Position {
	return Position{X: p.X + o.DX, Y: p.Y + o.DY}
}

// Grid is a square occupancy grid. Its size never changes after construction.
type Grid struct {
	Size  int
	Cells [][]CellState // Row-major: Cells[y][x]
}

// NewGrid creates an empty grid of the given size
func NewGrid(size int) *Grid {
	cells := make([][]CellState, size)
	for i := range cells {
		cells[i] = make([]CellState, size)
	}
	return &Grid{
		Size:  size,
		Cells: cells,
	}
}

// InBounds returns true if the position lies inside the grid
func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.Size && pos.Y >= 0 && pos.Y < g.Size
}

// Cell returns the state at the given position
func (g *Grid) Cell(pos Position) (CellState, error) {
	if !g.InBounds(pos) {
		return CellEmpty, outOfBounds(pos)
	}
	return g.Cells[pos.Y][pos.X], nil
}

// IsOccupied returns true if the cell is filled or an obstacle.
// Out-of-bounds positions report occupied.
func (g *Grid) IsOccupied(pos Position) bool {
	if !g.InBounds(pos) {
		return true
	}
	return g.Cells[pos.Y][pos.X] != CellEmpty
}

// SetFilled marks a cell as filled. Panics if pos is out of bounds.
func (g *Grid) SetFilled(pos Position) {
	g.mustInBounds(pos)
	g.Cells[pos.Y][pos.X] = CellFilled
}

// SetObstacle marks a cell as an obstacle. Panics if pos is out of bounds.
func (g *Grid) SetObstacle(pos Position) {
	g.mustInBounds(pos)
	g.Cells[pos.Y][pos.X] = CellObstacle
}

// Clear empties a cell and returns its previous state so the caller can
// account for removed obstacles. Panics if pos is out of bounds.
func (g *Grid) Clear(pos Position) CellState {
	g.mustInBounds(pos)
	prev := g.Cells[pos.Y][pos.X]
	g.Cells[pos.Y][pos.X] = CellEmpty
	return prev
}

// RowFull returns true if every cell in row y is occupied
func (g *Grid) RowFull(y int) bool {
	for x := 0; x < g.Size; x++ {
		if g.Cells[y][x] == CellEmpty {
			return false
		}
	}
	return true
}

// ColFull returns true if every cell in column x is occupied
func (g *Grid) ColFull(x int) bool {
	for y := 0; y < g.Size; y++ {
		if g.Cells[y][x] == CellEmpty {
			return false
		}
	}
	return true
}

// Count returns the number of cells in the given state
func (g *Grid) Count(state CellState) int {
	count := 0
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if g.Cells[y][x] == state {
				count++
			}
		}
	}
	return count
}

// EmptyCount returns the number of empty cells
func (g *Grid) EmptyCount() int {
	return g.Count(CellEmpty)
}

// Snapshot returns a copy of the cell states for rendering
func (g *Grid) Snapshot() [][]CellState {
	result := make([][]CellState, g.Size)
	for y := range result {
		result[y] = make([]CellState, g.Size)
		copy(result[y], g.Cells[y])
	}
	return result
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	return &Grid{
		Size:  g.Size,
		Cells: g.Snapshot(),
	}
}

func (g *Grid) mustInBounds(pos Position) {
	if !g.InBounds(pos) {
		panic(outOfBounds(pos))
	}
}

func outOfBounds(pos Position) error {
	return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, pos.X, pos.Y)
}
