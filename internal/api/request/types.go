package request

import (
	"time"

	"github.com/mcoot/blockgame-go/internal/model"
)

// ComboOverrides adjusts the combo rules of a variant preset
type ComboOverrides struct {
	Enabled                *bool `json:"enabled,omitempty"`
	AppliesBeforeIncrement *bool `json:"applies_before_increment,omitempty"`
	BaseValue              *int  `json:"base_value,omitempty"`
}

// BoosterOverrides adjusts the coin booster of a variant preset
type BoosterOverrides struct {
	Enabled         *bool `json:"enabled,omitempty"`
	CoinScore       *int  `json:"coin_score,omitempty"`
	Cost            *int  `json:"cost,omitempty"`
	Multiplier      *int  `json:"multiplier,omitempty"`
	DurationSeconds *int  `json:"duration_seconds,omitempty"`
}

// CreateSessionRequest is the request body for starting a session.
// Omitted fields keep the variant preset.
type CreateSessionRequest struct {
	Variant         string            `json:"variant,omitempty"`
	Catalog         *string           `json:"catalog,omitempty"`
	GridSize        *int              `json:"grid_size,omitempty"`
	BatchSize       *int              `json:"batch_size,omitempty"`
	ObstacleCount   *int              `json:"obstacle_count,omitempty"`
	SmartGeneration *bool             `json:"smart_generation,omitempty"`
	CellPoints      *int              `json:"cell_points,omitempty"`
	LinePoints      *int              `json:"line_points,omitempty"`
	Combo           *ComboOverrides   `json:"combo,omitempty"`
	Booster         *BoosterOverrides `json:"booster,omitempty"`
}

// SessionConfig resolves the request against its variant preset.
// An empty variant selects the default preset.
func (r CreateSessionRequest) SessionConfig() (model.SessionConfig, error) {
	cfg := model.DefaultSessionConfig()
	if r.Variant != "" {
		var err error
		cfg, err = model.ConfigForVariant(model.Variant(r.Variant))
		if err != nil {
			return model.SessionConfig{}, err
		}
	}

	setString(&cfg.Catalog, r.Catalog)
	setInt(&cfg.GridSize, r.GridSize)
	setInt(&cfg.BatchSize, r.BatchSize)
	setInt(&cfg.ObstacleCount, r.ObstacleCount)
	setBool(&cfg.SmartGeneration, r.SmartGeneration)
	setInt(&cfg.Scoring.CellPoints, r.CellPoints)
	setInt(&cfg.Scoring.LinePoints, r.LinePoints)

	if c := r.Combo; c != nil {
		setBool(&cfg.Combo.Enabled, c.Enabled)
		setBool(&cfg.Combo.AppliesBeforeIncrement, c.AppliesBeforeIncrement)
		setInt(&cfg.Combo.BaseValue, c.BaseValue)
	}

	if b := r.Booster; b != nil {
		setBool(&cfg.Booster.Enabled, b.Enabled)
		setInt(&cfg.Booster.CoinScore, b.CoinScore)
		setInt(&cfg.Booster.Cost, b.Cost)
		setInt(&cfg.Booster.Multiplier, b.Multiplier)
		if b.DurationSeconds != nil {
			cfg.Booster.Duration = time.Duration(*b.DurationSeconds) * time.Second
		}
	}

	return cfg, nil
}

// PlaceRequest is the request body for placing a piece and for fit queries
type PlaceRequest struct {
	PieceID string `json:"piece_id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// AutoplayRequest is the request body for letting a bot play a session
type AutoplayRequest struct {
	Strategy string `json:"strategy"`
	MaxMoves int    `json:"max_moves,omitempty"`
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
