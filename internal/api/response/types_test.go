package response

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/game"
	"github.com/mcoot/blockgame-go/internal/testutil"
)

func TestGridRows(t *testing.T) {
	grid := testutil.GridFromRows(
		"#..",
		".X.",
		"..#",
	)

	assert.Equal(t, []string{"#..", ".X.", "..#"}, GridRows(grid))
}

func TestShapeFromModel(t *testing.T) {
	corner := model.MustShape("corner", model.Offset{DX: 0, DY: 0}, model.Offset{DX: 0, DY: 1}, model.Offset{DX: 1, DY: 1})

	shape := ShapeFromModel(corner)

	assert.Equal(t, "corner", shape.ID)
	assert.Equal(t, 3, shape.Size)
	assert.Equal(t, []string{"#.", "##"}, shape.Rows)
	assert.Equal(t, []Position{{0, 0}, {0, 1}, {1, 1}}, shape.Cells)
}

func TestBoosterFromModel(t *testing.T) {
	session := &model.Session{Grid: model.NewGrid(8)}
	assert.Nil(t, BoosterFromModel(session, game.BoosterStatus{}))

	until := time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC)
	session.Config.Booster = model.BoosterConfig{Enabled: true, Cost: 5, Multiplier: 2}
	session.Booster.ActiveUntil = until

	b := BoosterFromModel(session, game.BoosterStatus{Coins: 3, Active: true, Remaining: 90*time.Second + 400*time.Millisecond})

	assert.Equal(t, 3, b.Coins)
	assert.Equal(t, 5, b.Cost)
	assert.Equal(t, 2, b.Multiplier)
	assert.True(t, b.Active)
	assert.Equal(t, 90, b.RemainingSeconds)
	assert.Equal(t, &until, b.ActiveUntil)
}

func TestEventFromModelMapsPayloads(t *testing.T) {
	e := EventFromModel(model.Event{
		Type:      model.EventGameOver,
		SessionID: "s1",
		Payload:   model.SessionEndedPayload{Score: 420, Best: 900},
	})

	assert.Equal(t, "game_over", e.Type)
	assert.Equal(t, "s1", e.SessionID)
	assert.Equal(t, SessionEndedPayload{Score: 420, Best: 900}, e.Payload)

	e = EventFromModel(model.Event{
		Type:    model.EventBatchRefilled,
		Payload: model.BatchRefilledPayload{Batch: []model.Piece{{ID: "p4", Shape: model.MustShape("mono", model.Offset{})}}},
	})
	payload, ok := e.Payload.(BatchPayload)
	if assert.True(t, ok) {
		assert.Equal(t, "p4", payload.Batch[0].ID)
	}
}
