package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blockgame-go/internal/api/response"
	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/bot"
	"github.com/mcoot/blockgame-go/internal/services/game"
)

// MetaHandler serves variant presets and best scores
type MetaHandler struct {
	gameController *game.Controller
	botService     *bot.Service
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(gameController *game.Controller, botService *bot.Service) *MetaHandler {
	return &MetaHandler{
		gameController: gameController,
		botService:     botService,
	}
}

// Variants handles GET /api/v1/variants
func (h *MetaHandler) Variants(w http.ResponseWriter, r *http.Request) {
	resp := response.VariantList{Strategies: h.botService.Strategies()}
	for _, v := range model.ValidVariants() {
		cfg, err := model.ConfigForVariant(v)
		if err != nil {
			WriteError(w, err)
			return
		}
		resp.Variants = append(resp.Variants, response.VariantFromModel(cfg))
	}

	response.JSON(w, http.StatusOK, resp)
}

// Best handles GET /api/v1/best/{variant}
func (h *MetaHandler) Best(w http.ResponseWriter, r *http.Request) {
	variant := model.Variant(mux.Vars(r)["variant"])
	if _, err := model.ConfigForVariant(variant); err != nil {
		WriteError(w, err)
		return
	}

	best, err := h.gameController.BestScore(r.Context(), variant)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BestScore{Variant: string(variant), Best: best})
}
