package factory

import (
	"errors"
	"log/slog"

	"github.com/mcoot/blockgame-go/internal/api/ws"
	"github.com/mcoot/blockgame-go/internal/dependencies/clock"
	"github.com/mcoot/blockgame-go/internal/dependencies/ids"
	"github.com/mcoot/blockgame-go/internal/dependencies/random"
	"github.com/mcoot/blockgame-go/internal/services/bot"
	"github.com/mcoot/blockgame-go/internal/services/game"
	"github.com/mcoot/blockgame-go/internal/services/gameover"
	"github.com/mcoot/blockgame-go/internal/services/placement"
	"github.com/mcoot/blockgame-go/internal/services/scoring"
	"github.com/mcoot/blockgame-go/internal/storage"
	"github.com/mcoot/blockgame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/blockgame-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	IDs    ids.Generator

	// Services
	PlacementEngine *placement.Engine
	ScoreTracker    *scoring.Tracker
	Detector        *gameover.Detector
	GameController  *game.Controller
	BotService      *bot.Service
	HubManager      *ws.HubManager
	Broadcaster     *ws.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Seed makes piece dealing reproducible across runs. Zero picks a
	// random seed.
	Seed uint64
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	rnd := random.New()
	if cfg.Seed != 0 {
		rnd = random.NewSeeded(cfg.Seed, cfg.Seed)
	}

	return newWithDependencies(store, clock.New(), rnd, ids.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, idGen ids.Generator, logger *slog.Logger) *App {
	hubManager := ws.NewHubManager(logger)
	broadcaster := ws.NewBroadcaster(hubManager, logger)

	placementEngine := placement.New(logger)
	tracker := scoring.New(clk)
	detector := gameover.New()
	gameController := game.NewController(store, placementEngine, tracker, detector, clk, rnd, idGen, broadcaster, logger)

	botService := bot.NewService(gameController, map[string]bot.Strategy{
		bot.StrategyRandom: bot.NewRandomStrategy(rnd),
		bot.StrategyGreedy: bot.NewGreedyStrategy(placementEngine),
	}, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		IDs:             idGen,
		PlacementEngine: placementEngine,
		ScoreTracker:    tracker,
		Detector:        detector,
		GameController:  gameController,
		BotService:      botService,
		HubManager:      hubManager,
		Broadcaster:     broadcaster,
	}
}
