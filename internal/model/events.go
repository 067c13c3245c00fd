package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventSessionStarted   EventType = "session_started"
	EventSessionReset     EventType = "session_reset"
	EventPiecePlaced      EventType = "piece_placed"
	EventLinesCleared     EventType = "lines_cleared"
	EventBatchRefilled    EventType = "batch_refilled"
	EventBoosterActivated EventType = "booster_activated"
	EventGameOver         EventType = "game_over"
	EventWon              EventType = "won"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID SessionID
	Payload   any // Type-specific data
}

// PiecePlacedPayload contains data for piece placed events
type PiecePlacedPayload struct {
	Placement PlacementResult
	Score     int
}

// LinesClearedPayload contains data for lines cleared events
type LinesClearedPayload struct {
	Clear ClearResult
	Score int
}

// BatchRefilledPayload contains data for batch refilled events
type BatchRefilledPayload struct {
	Batch []Piece
}

// BoosterActivatedPayload contains data for booster activated events
type BoosterActivatedPayload struct {
	ActiveUntil time.Time
	CoinsLeft   int
}

// SessionEndedPayload contains data for game over and won events
type SessionEndedPayload struct {
	Score int
	Best  int
}
