package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blockgame-go/internal/api/request"
	"github.com/mcoot/blockgame-go/internal/api/response"
	"github.com/mcoot/blockgame-go/internal/api/ws"
	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/bot"
	"github.com/mcoot/blockgame-go/internal/services/game"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	gameController *game.Controller
	botService     *bot.Service
	hubManager     *ws.HubManager
}

// NewSessionHandler creates a new session handler. hubManager may be nil.
func NewSessionHandler(gameController *game.Controller, botService *bot.Service, hubManager *ws.HubManager) *SessionHandler {
	return &SessionHandler{
		gameController: gameController,
		botService:     botService,
		hubManager:     hubManager,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	cfg, err := req.SessionConfig()
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.gameController.CreateSession(r.Context(), cfg)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, h.sessionResponse(session))
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.gameController.ListSessions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.SessionList{Sessions: make([]string, len(ids))}
	for i, id := range ids {
		resp.Sessions[i] = string(id)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameController.GetSession(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.sessionResponse(session))
}

// Delete handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if err := h.gameController.DeleteSession(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	// Disconnect anyone still watching
	if h.hubManager != nil {
		h.hubManager.RemoveHub(id)
	}

	response.NoContent(w)
}

// Fit handles POST /api/v1/sessions/{id}/fit
func (h *SessionHandler) Fit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePlace(w, r)
	if !ok {
		return
	}

	id := sessionID(r)
	pieceID := model.PieceID(req.PieceID)
	origin := model.Position{X: req.X, Y: req.Y}

	canPlace, err := h.gameController.CanPlace(r.Context(), id, pieceID, origin)
	if err != nil {
		WriteError(w, err)
		return
	}
	anywhere, err := h.gameController.CanPlaceAnywhere(r.Context(), id, pieceID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Fit{
		PieceID:          req.PieceID,
		Origin:           response.PositionFromModel(origin),
		CanPlace:         canPlace,
		CanPlaceAnywhere: anywhere,
	})
}

// GameOver handles GET /api/v1/sessions/{id}/gameover
func (h *SessionHandler) GameOver(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	over, err := h.gameController.IsGameOver(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	session, err := h.gameController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameOver{GameOver: over, State: string(session.State)})
}

// Place handles POST /api/v1/sessions/{id}/place
func (h *SessionHandler) Place(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePlace(w, r)
	if !ok {
		return
	}

	id := sessionID(r)
	result, err := h.gameController.Place(r.Context(), id, model.PieceID(req.PieceID), model.Position{X: req.X, Y: req.Y})
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.gameController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveFromModel(result, h.sessionResponse(session)))
}

// TryPlace handles POST /api/v1/sessions/{id}/try-place. The clear pass
// is left pending until Resolve is called.
func (h *SessionHandler) TryPlace(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePlace(w, r)
	if !ok {
		return
	}

	result, err := h.gameController.TryPlace(r.Context(), sessionID(r), model.PieceID(req.PieceID), model.Position{X: req.X, Y: req.Y})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlacementFromModel(result))
}

// Resolve handles POST /api/v1/sessions/{id}/resolve
func (h *SessionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	result, err := h.gameController.ResolveClears(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ClearFromModel(result))
}

// Refill handles POST /api/v1/sessions/{id}/refill
func (h *SessionHandler) Refill(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	batch, err := h.gameController.RefillBatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	session, err := h.gameController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Batch{
		Batch: response.PiecesFromModel(batch),
		State: string(session.State),
	})
}

// Reset handles POST /api/v1/sessions/{id}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameController.ResetSession(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.sessionResponse(session))
}

// Booster handles POST /api/v1/sessions/{id}/booster
func (h *SessionHandler) Booster(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameController.ActivateBooster(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.sessionResponse(session))
}

// Autoplay handles POST /api/v1/sessions/{id}/autoplay
func (h *SessionHandler) Autoplay(w http.ResponseWriter, r *http.Request) {
	var req request.AutoplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Strategy == "" {
		req.Strategy = bot.StrategyGreedy
	}

	id := sessionID(r)
	result, err := h.botService.Autoplay(r.Context(), id, req.Strategy, req.MaxMoves)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.gameController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AutoplayFromModel(req.Strategy, result, h.sessionResponse(session)))
}

func (h *SessionHandler) sessionResponse(session *model.Session) response.Session {
	return response.SessionFromModel(session, h.gameController.Booster(session))
}

func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["id"])
}

func decodePlace(w http.ResponseWriter, r *http.Request) (request.PlaceRequest, bool) {
	var req request.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return req, false
	}
	if req.PieceID == "" {
		WriteError(w, NewInvalidRequestError("piece_id is required"))
		return req, false
	}
	return req, true
}
