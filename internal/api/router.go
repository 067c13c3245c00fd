package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blockgame-go/internal/api/apierr"
	"github.com/mcoot/blockgame-go/internal/api/handler"
	"github.com/mcoot/blockgame-go/internal/api/ws"
	"github.com/mcoot/blockgame-go/internal/dependencies/ids"
	"github.com/mcoot/blockgame-go/internal/middleware"
	"github.com/mcoot/blockgame-go/internal/services/bot"
	"github.com/mcoot/blockgame-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	BotService     *bot.Service
	HubManager     *ws.HubManager
	IDs            ids.Generator
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.GameController, cfg.BotService, cfg.HubManager)
	metaHandler := handler.NewMetaHandler(cfg.GameController, cfg.BotService)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, apiPanicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session routes
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("", sessionHandler.List).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Delete).Methods(http.MethodDelete)
	sessions.HandleFunc("/{id}/fit", sessionHandler.Fit).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/gameover", sessionHandler.GameOver).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/place", sessionHandler.Place).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/try-place", sessionHandler.TryPlace).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/resolve", sessionHandler.Resolve).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/refill", sessionHandler.Refill).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/reset", sessionHandler.Reset).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/booster", sessionHandler.Booster).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/autoplay", sessionHandler.Autoplay).Methods(http.MethodPost)

	// Event stream, only when a hub manager is wired
	if cfg.HubManager != nil {
		eventsHandler := handler.NewEventsHandler(cfg.GameController, cfg.HubManager, cfg.IDs, cfg.Logger)
		sessions.HandleFunc("/{id}/events", eventsHandler.Stream).Methods(http.MethodGet)
	}

	// Presets and best scores
	api.HandleFunc("/variants", metaHandler.Variants).Methods(http.MethodGet)
	api.HandleFunc("/best/{variant}", metaHandler.Best).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// apiPanicHandler answers a recovered panic with the generic JSON 500
func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
