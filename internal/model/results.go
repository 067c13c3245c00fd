package model

// PlacementResult describes a committed placement
type PlacementResult struct {
	PieceID PieceID
	ShapeID ShapeID
	Origin  Position
	Filled  []Position // Newly filled cells, in shape order
	Points  int        // Score awarded for the cells
}

// ClearResult describes one clear pass over the grid
type ClearResult struct {
	Rows             []int      // Full rows, ascending
	Cols             []int      // Full columns, ascending
	Cells            []Position // Affected cells, each listed once
	LinesCleared     int
	ObstaclesCleared int
	CellsCleared     int
	Multiplier       int // Combo multiplier applied to the line reward
	Combo            int // Streak after this round
	Points           int
}

// MoveResult is the full outcome of placing a piece and resolving clears
type MoveResult struct {
	Placement PlacementResult
	Clear     ClearResult
	Refilled  []Piece // Non-nil when the batch was exhausted and redealt
	State     SessionState
	Score     int
}
