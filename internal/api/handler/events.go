package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/blockgame-go/internal/api/ws"
	"github.com/mcoot/blockgame-go/internal/dependencies/ids"
	"github.com/mcoot/blockgame-go/internal/services/game"
)

// EventsHandler upgrades session event subscriptions to websockets
type EventsHandler struct {
	gameController *game.Controller
	hubManager     *ws.HubManager
	ids            ids.Generator
	logger         *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(gameController *game.Controller, hubManager *ws.HubManager, ids ids.Generator, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		gameController: gameController,
		hubManager:     hubManager,
		ids:            ids,
		logger:         logger.With(slog.String("component", "events-handler")),
	}
}

// Stream handles GET /api/v1/sessions/{id}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	// Only existing sessions can be watched
	if _, err := h.gameController.GetSession(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	ws.ServeSession(w, r, hub, h.ids.NewID(), h.logger)
}
