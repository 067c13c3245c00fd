package response

import (
	"strings"
	"time"

	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/bot"
	"github.com/mcoot/blockgame-go/internal/services/game"
)

// Cell symbols used in grid and shape rows
const (
	SymbolEmpty    = '.'
	SymbolFilled   = '#'
	SymbolObstacle = 'X'
)

// Position represents a grid coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PositionFromModel converts model.Position
func PositionFromModel(p model.Position) Position {
	return Position{X: p.X, Y: p.Y}
}

func positionsFromModel(ps []model.Position) []Position {
	out := make([]Position, len(ps))
	for i, p := range ps {
		out[i] = PositionFromModel(p)
	}
	return out
}

// Shape represents a piece footprint. Rows render the shape with '#' for
// occupied cells and '.' for gaps.
type Shape struct {
	ID    string     `json:"id"`
	Size  int        `json:"size"`
	Cells []Position `json:"cells"`
	Rows  []string   `json:"rows"`
}

// ShapeFromModel converts model.Shape
func ShapeFromModel(s model.Shape) Shape {
	cells := make([]Position, len(s.Cells))
	for i, c := range s.Cells {
		cells[i] = Position{X: c.DX, Y: c.DY}
	}

	matrix := s.Matrix()
	rows := make([]string, len(matrix))
	for y, row := range matrix {
		var b strings.Builder
		for _, set := range row {
			if set {
				b.WriteByte(SymbolFilled)
			} else {
				b.WriteByte(SymbolEmpty)
			}
		}
		rows[y] = b.String()
	}

	return Shape{
		ID:    string(s.ID),
		Size:  s.Size(),
		Cells: cells,
		Rows:  rows,
	}
}

// Piece represents a batch piece
type Piece struct {
	ID    string `json:"id"`
	Shape Shape  `json:"shape"`
}

// PiecesFromModel converts a batch
func PiecesFromModel(ps []model.Piece) []Piece {
	out := make([]Piece, len(ps))
	for i, p := range ps {
		out[i] = Piece{ID: string(p.ID), Shape: ShapeFromModel(p.Shape)}
	}
	return out
}

// GridRows renders a grid as one string per row
func GridRows(g *model.Grid) []string {
	rows := make([]string, g.Size)
	for y := 0; y < g.Size; y++ {
		var b strings.Builder
		for x := 0; x < g.Size; x++ {
			switch g.Cells[y][x] {
			case model.CellFilled:
				b.WriteByte(SymbolFilled)
			case model.CellObstacle:
				b.WriteByte(SymbolObstacle)
			default:
				b.WriteByte(SymbolEmpty)
			}
		}
		rows[y] = b.String()
	}
	return rows
}

// Score represents the score state of a session
type Score struct {
	Score        int `json:"score"`
	Combo        int `json:"combo"`
	Best         int `json:"best"`
	LinesCleared int `json:"lines_cleared"`
}

// Booster represents the coin booster status of a session
type Booster struct {
	Coins            int        `json:"coins"`
	Cost             int        `json:"cost"`
	Multiplier       int        `json:"multiplier"`
	Active           bool       `json:"active"`
	RemainingSeconds int        `json:"remaining_seconds"`
	ActiveUntil      *time.Time `json:"active_until,omitempty"`
}

// BoosterFromModel converts a booster status. Returns nil when the
// variant has no booster.
func BoosterFromModel(s *model.Session, status game.BoosterStatus) *Booster {
	if !s.Config.Booster.Enabled {
		return nil
	}
	b := &Booster{
		Coins:            status.Coins,
		Cost:             s.Config.Booster.Cost,
		Multiplier:       s.Config.Booster.Multiplier,
		Active:           status.Active,
		RemainingSeconds: int(status.Remaining.Round(time.Second) / time.Second),
	}
	if status.Active {
		until := s.Booster.ActiveUntil
		b.ActiveUntil = &until
	}
	return b
}

// Session represents a game session
type Session struct {
	ID                 string    `json:"id"`
	Variant            string    `json:"variant"`
	Catalog            string    `json:"catalog"`
	State              string    `json:"state"`
	GridSize           int       `json:"grid_size"`
	Grid               []string  `json:"grid"`
	Batch              []Piece   `json:"batch"`
	Score              Score     `json:"score"`
	Booster            *Booster  `json:"booster,omitempty"`
	Rounds             int       `json:"rounds"`
	PendingResolve     bool      `json:"pending_resolve"`
	ObstaclesPlaced    int       `json:"obstacles_placed"`
	ObstaclesRemaining int       `json:"obstacles_remaining"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s *model.Session, booster game.BoosterStatus) Session {
	return Session{
		ID:       string(s.ID),
		Variant:  string(s.Config.Variant),
		Catalog:  s.Config.Catalog,
		State:    string(s.State),
		GridSize: s.Grid.Size,
		Grid:     GridRows(s.Grid),
		Batch:    PiecesFromModel(s.Batch),
		Score: Score{
			Score:        s.Score.Score,
			Combo:        s.Score.Combo,
			Best:         s.Score.Best,
			LinesCleared: s.Score.LinesCleared,
		},
		Booster:            BoosterFromModel(s, booster),
		Rounds:             s.Rounds,
		PendingResolve:     s.PendingResolve,
		ObstaclesPlaced:    s.ObstaclesPlaced,
		ObstaclesRemaining: s.ObstaclesRemaining(),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// SessionList is the response for listing sessions
type SessionList struct {
	Sessions []string `json:"sessions"`
}

// Placement represents a committed placement
type Placement struct {
	PieceID string     `json:"piece_id"`
	ShapeID string     `json:"shape_id"`
	Origin  Position   `json:"origin"`
	Filled  []Position `json:"filled"`
	Points  int        `json:"points"`
}

// PlacementFromModel converts model.PlacementResult
func PlacementFromModel(p model.PlacementResult) Placement {
	return Placement{
		PieceID: string(p.PieceID),
		ShapeID: string(p.ShapeID),
		Origin:  PositionFromModel(p.Origin),
		Filled:  positionsFromModel(p.Filled),
		Points:  p.Points,
	}
}

// Clear represents one clear pass
type Clear struct {
	Rows             []int      `json:"rows"`
	Cols             []int      `json:"cols"`
	Cells            []Position `json:"cells"`
	LinesCleared     int        `json:"lines_cleared"`
	ObstaclesCleared int        `json:"obstacles_cleared"`
	CellsCleared     int        `json:"cells_cleared"`
	Multiplier       int        `json:"multiplier"`
	Combo            int        `json:"combo"`
	Points           int        `json:"points"`
}

// ClearFromModel converts model.ClearResult
func ClearFromModel(c model.ClearResult) Clear {
	rows := c.Rows
	if rows == nil {
		rows = []int{}
	}
	cols := c.Cols
	if cols == nil {
		cols = []int{}
	}
	return Clear{
		Rows:             rows,
		Cols:             cols,
		Cells:            positionsFromModel(c.Cells),
		LinesCleared:     c.LinesCleared,
		ObstaclesCleared: c.ObstaclesCleared,
		CellsCleared:     c.CellsCleared,
		Multiplier:       c.Multiplier,
		Combo:            c.Combo,
		Points:           c.Points,
	}
}

// Move is the response for a full place-and-resolve move
type Move struct {
	Placement Placement `json:"placement"`
	Clear     Clear     `json:"clear"`
	Refilled  []Piece   `json:"refilled,omitempty"`
	State     string    `json:"state"`
	Score     int       `json:"score"`
	Session   Session   `json:"session"`
}

// MoveFromModel converts model.MoveResult with the session after the move
func MoveFromModel(m model.MoveResult, session Session) Move {
	var refilled []Piece
	if m.Refilled != nil {
		refilled = PiecesFromModel(m.Refilled)
	}
	return Move{
		Placement: PlacementFromModel(m.Placement),
		Clear:     ClearFromModel(m.Clear),
		Refilled:  refilled,
		State:     string(m.State),
		Score:     m.Score,
		Session:   session,
	}
}

// Batch is the response for a refill
type Batch struct {
	Batch []Piece `json:"batch"`
	State string  `json:"state"`
}

// Fit is the response for fit queries
type Fit struct {
	PieceID          string   `json:"piece_id"`
	Origin           Position `json:"origin"`
	CanPlace         bool     `json:"can_place"`
	CanPlaceAnywhere bool     `json:"can_place_anywhere"`
}

// GameOver is the response for the game over query
type GameOver struct {
	GameOver bool   `json:"game_over"`
	State    string `json:"state"`
}

// Variant describes a preset configuration
type Variant struct {
	Name            string `json:"name"`
	Catalog         string `json:"catalog"`
	GridSize        int    `json:"grid_size"`
	BatchSize       int    `json:"batch_size"`
	ObstacleCount   int    `json:"obstacle_count"`
	SmartGeneration bool   `json:"smart_generation"`
	Combo           bool   `json:"combo"`
	Booster         bool   `json:"booster"`
}

// VariantFromModel converts a preset config
func VariantFromModel(cfg model.SessionConfig) Variant {
	return Variant{
		Name:            string(cfg.Variant),
		Catalog:         cfg.Catalog,
		GridSize:        cfg.GridSize,
		BatchSize:       cfg.BatchSize,
		ObstacleCount:   cfg.ObstacleCount,
		SmartGeneration: cfg.SmartGeneration,
		Combo:           cfg.Combo.Enabled,
		Booster:         cfg.Booster.Enabled,
	}
}

// VariantList is the response for listing variants
type VariantList struct {
	Variants   []Variant `json:"variants"`
	Strategies []string  `json:"strategies"`
}

// BestScore is the response for the best score query
type BestScore struct {
	Variant string `json:"variant"`
	Best    int    `json:"best"`
}

// AutoplayMove is one move made by a bot
type AutoplayMove struct {
	PieceID      string   `json:"piece_id"`
	Origin       Position `json:"origin"`
	LinesCleared int      `json:"lines_cleared"`
	Points       int      `json:"points"`
}

// Autoplay is the response for a bot run
type Autoplay struct {
	Strategy string         `json:"strategy"`
	Moves    []AutoplayMove `json:"moves"`
	State    string         `json:"state"`
	Score    int            `json:"score"`
	Session  Session        `json:"session"`
}

// AutoplayFromModel converts bot.AutoplayResult
func AutoplayFromModel(strategy string, r *bot.AutoplayResult, session Session) Autoplay {
	moves := make([]AutoplayMove, len(r.Moves))
	for i, m := range r.Moves {
		moves[i] = AutoplayMove{
			PieceID:      string(m.Move.PieceID),
			Origin:       PositionFromModel(m.Move.Origin),
			LinesCleared: m.Result.Clear.LinesCleared,
			Points:       m.Result.Placement.Points + m.Result.Clear.Points,
		}
	}
	return Autoplay{
		Strategy: strategy,
		Moves:    moves,
		State:    string(r.State),
		Score:    r.Score,
		Session:  session,
	}
}

// Event is a session event pushed to websocket subscribers
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Payload   any       `json:"payload,omitempty"`
}

// PiecePlacedPayload is the payload of piece_placed events
type PiecePlacedPayload struct {
	Placement Placement `json:"placement"`
	Score     int       `json:"score"`
}

// LinesClearedPayload is the payload of lines_cleared events
type LinesClearedPayload struct {
	Clear Clear `json:"clear"`
	Score int   `json:"score"`
}

// BatchPayload is the payload of batch_refilled events
type BatchPayload struct {
	Batch []Piece `json:"batch"`
}

// BoosterActivatedPayload is the payload of booster_activated events
type BoosterActivatedPayload struct {
	ActiveUntil time.Time `json:"active_until"`
	CoinsLeft   int       `json:"coins_left"`
}

// SessionEndedPayload is the payload of game_over and won events
type SessionEndedPayload struct {
	Score int `json:"score"`
	Best  int `json:"best"`
}

// EventFromModel converts model.Event, mapping known payloads to their
// wire form
func EventFromModel(e model.Event) Event {
	var payload any
	switch p := e.Payload.(type) {
	case model.PiecePlacedPayload:
		payload = PiecePlacedPayload{Placement: PlacementFromModel(p.Placement), Score: p.Score}
	case model.LinesClearedPayload:
		payload = LinesClearedPayload{Clear: ClearFromModel(p.Clear), Score: p.Score}
	case model.BatchRefilledPayload:
		payload = BatchPayload{Batch: PiecesFromModel(p.Batch)}
	case model.BoosterActivatedPayload:
		payload = BoosterActivatedPayload{ActiveUntil: p.ActiveUntil, CoinsLeft: p.CoinsLeft}
	case model.SessionEndedPayload:
		payload = SessionEndedPayload(p)
	default:
		payload = p
	}
	return Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		SessionID: string(e.SessionID),
		Payload:   payload,
	}
}
