package model

import (
	"fmt"
	"time"
)

// Variant names a preset game configuration. Best scores are kept per variant.
type Variant string

const (
	VariantClassic  Variant = "classic"  // Six small shapes, flat line bonus
	VariantObstacle Variant = "obstacle" // Five obstacles to clear for a win
	VariantCombo    Variant = "combo"    // Combo multiplier and smart dealing
	VariantBooster  Variant = "booster"  // Combo variant plus the x2 coin booster
)

// Catalog names, resolved by the shapes package
const (
	CatalogClassic  = "classic"
	CatalogObstacle = "obstacle"
	CatalogExtended = "extended"
)

// MaxGridSize bounds the configurable grid dimension
const MaxGridSize = 32

// ComboConfig controls how the combo streak feeds the line reward
type ComboConfig struct {
	Enabled                bool // false: the streak is tracked but the multiplier is always 1
	AppliesBeforeIncrement bool // true: reward uses the streak value from before this round
	BaseValue              int  // Streak value after a round with no clear
}

// ScoringConfig holds point values
type ScoringConfig struct {
	CellPoints int // Per cell placed
	LinePoints int // Per row or column cleared, before the combo multiplier
}

// DifficultyConfig narrows unconstrained draws to small shapes when the
// board is crowded. A zero threshold disables it.
type DifficultyConfig struct {
	SmallShapeThreshold int // Empty-cell count at or below which the bias applies
	SmallShapeMaxCells  int // Largest shape size drawn while biased
}

// BoosterConfig controls the coin-bought score multiplier
type BoosterConfig struct {
	Enabled    bool
	CoinScore  int           // Points per coin earned
	Cost       int           // Coins per activation
	Multiplier int           // Applied to every score delta while active
	Duration   time.Duration // Active time per activation
}

// SessionConfig is the static configuration of a game session
type SessionConfig struct {
	Variant         Variant
	Catalog         string
	GridSize        int
	BatchSize       int
	ObstacleCount   int // 0 disables obstacle mode
	SmartGeneration bool
	Combo           ComboConfig
	Scoring         ScoringConfig
	Difficulty      DifficultyConfig
	Booster         BoosterConfig
}

// DefaultSessionConfig returns the combo variant, which covers the
// superset of scoring behaviors
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Variant:         VariantCombo,
		Catalog:         CatalogExtended,
		GridSize:        8,
		BatchSize:       3,
		SmartGeneration: true,
		Combo: ComboConfig{
			Enabled: true,
		},
		Scoring: ScoringConfig{
			CellPoints: 10,
			LinePoints: 100,
		},
		Difficulty: DifficultyConfig{
			SmallShapeThreshold: 12,
			SmallShapeMaxCells:  3,
		},
	}
}

// ConfigForVariant returns the preset configuration for a variant
func ConfigForVariant(v Variant) (SessionConfig, error) {
	cfg := DefaultSessionConfig()
	cfg.Variant = v

	switch v {
	case VariantClassic:
		cfg.Catalog = CatalogClassic
		cfg.SmartGeneration = false
		cfg.Combo = ComboConfig{}
		cfg.Difficulty = DifficultyConfig{}
	case VariantObstacle:
		cfg.Catalog = CatalogObstacle
		cfg.ObstacleCount = 5
		cfg.SmartGeneration = false
		cfg.Combo = ComboConfig{}
		cfg.Difficulty = DifficultyConfig{}
	case VariantCombo:
	case VariantBooster:
		cfg.Booster = BoosterConfig{
			Enabled:    true,
			CoinScore:  1000,
			Cost:       5,
			Multiplier: 2,
			Duration:   5 * time.Minute,
		}
	default:
		return SessionConfig{}, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}

	return cfg, nil
}

// ValidVariants returns all preset variant names
func ValidVariants() []Variant {
	return []Variant{VariantClassic, VariantObstacle, VariantCombo, VariantBooster}
}

// Validate checks the config for values the engine cannot run with
func (c SessionConfig) Validate() error {
	switch {
	case c.Variant == "":
		return fmt.Errorf("%w: variant is required", ErrInvalidConfig)
	case c.Catalog == "":
		return fmt.Errorf("%w: catalog is required", ErrInvalidConfig)
	case c.GridSize < 1 || c.GridSize > MaxGridSize:
		return fmt.Errorf("%w: grid size must be between 1 and %d", ErrInvalidConfig, MaxGridSize)
	case c.BatchSize < 1:
		return fmt.Errorf("%w: batch size must be positive", ErrInvalidConfig)
	case c.ObstacleCount < 0 || c.ObstacleCount >= c.GridSize*c.GridSize:
		return fmt.Errorf("%w: obstacle count must leave at least one free cell", ErrInvalidConfig)
	case c.Scoring.CellPoints < 0 || c.Scoring.LinePoints < 0:
		return fmt.Errorf("%w: point values must not be negative", ErrInvalidConfig)
	case c.Combo.BaseValue < 0:
		return fmt.Errorf("%w: combo base value must not be negative", ErrInvalidConfig)
	case c.Difficulty.SmallShapeThreshold < 0 || c.Difficulty.SmallShapeMaxCells < 0:
		return fmt.Errorf("%w: difficulty values must not be negative", ErrInvalidConfig)
	}

	if c.Booster.Enabled {
		b := c.Booster
		if b.CoinScore < 1 || b.Cost < 0 || b.Multiplier < 1 || b.Duration <= 0 {
			return fmt.Errorf("%w: booster needs positive coin score, multiplier and duration", ErrInvalidConfig)
		}
	}

	return nil
}
