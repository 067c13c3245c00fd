package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blockgame-go/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestSessionConfigDefaultsToComboPreset(t *testing.T) {
	cfg, err := CreateSessionRequest{}.SessionConfig()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSessionConfig(), cfg)
}

func TestSessionConfigAppliesOverrides(t *testing.T) {
	req := CreateSessionRequest{
		Variant:         "obstacle",
		GridSize:        ptr(10),
		ObstacleCount:   ptr(0),
		SmartGeneration: ptr(true),
		LinePoints:      ptr(50),
		Combo: &ComboOverrides{
			Enabled:                ptr(true),
			AppliesBeforeIncrement: ptr(true),
			BaseValue:              ptr(1),
		},
		Booster: &BoosterOverrides{
			Enabled:         ptr(true),
			CoinScore:       ptr(500),
			Cost:            ptr(2),
			Multiplier:      ptr(3),
			DurationSeconds: ptr(30),
		},
	}

	cfg, err := req.SessionConfig()
	require.NoError(t, err)

	assert.Equal(t, model.VariantObstacle, cfg.Variant)
	assert.Equal(t, model.CatalogObstacle, cfg.Catalog)
	assert.Equal(t, 10, cfg.GridSize)
	assert.Equal(t, 3, cfg.BatchSize)
	assert.Zero(t, cfg.ObstacleCount)
	assert.True(t, cfg.SmartGeneration)
	assert.Equal(t, 10, cfg.Scoring.CellPoints)
	assert.Equal(t, 50, cfg.Scoring.LinePoints)
	assert.Equal(t, model.ComboConfig{Enabled: true, AppliesBeforeIncrement: true, BaseValue: 1}, cfg.Combo)
	assert.Equal(t, model.BoosterConfig{
		Enabled:    true,
		CoinScore:  500,
		Cost:       2,
		Multiplier: 3,
		Duration:   30 * time.Second,
	}, cfg.Booster)
}

func TestSessionConfigUnknownVariant(t *testing.T) {
	_, err := CreateSessionRequest{Variant: "tetris"}.SessionConfig()
	assert.ErrorIs(t, err, model.ErrUnknownVariant)
}
