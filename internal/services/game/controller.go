package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/blockgame-go/internal/dependencies/clock"
	"github.com/mcoot/blockgame-go/internal/dependencies/ids"
	"github.com/mcoot/blockgame-go/internal/dependencies/random"
	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/fit"
	"github.com/mcoot/blockgame-go/internal/services/gameover"
	"github.com/mcoot/blockgame-go/internal/services/generator"
	"github.com/mcoot/blockgame-go/internal/services/placement"
	"github.com/mcoot/blockgame-go/internal/services/scoring"
	"github.com/mcoot/blockgame-go/internal/services/shapes"
	"github.com/mcoot/blockgame-go/internal/storage"
)

// Publisher receives session events. Publish must not block.
type Publisher interface {
	Publish(event model.Event)
}

// BoosterStatus describes the coin booster of a session at a point in time
type BoosterStatus struct {
	Coins     int
	Active    bool
	Remaining time.Duration
}

// Controller owns the session lifecycle: dealing, placement, clears,
// scoring and terminal states. Calls are serialized.
type Controller struct {
	mu sync.Mutex

	storage   storage.Storage
	placement *placement.Engine
	scoring   *scoring.Tracker
	detector  *gameover.Detector
	clock     clock.Clock
	random    random.Random
	ids       ids.Generator
	publisher Publisher
	logger    *slog.Logger

	catalogs map[string]*shapes.Catalog
}

// NewController creates a new game Controller. publisher may be nil.
func NewController(
	storage storage.Storage,
	placement *placement.Engine,
	scoring *scoring.Tracker,
	detector *gameover.Detector,
	clock clock.Clock,
	random random.Random,
	ids ids.Generator,
	publisher Publisher,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		placement: placement,
		scoring:   scoring,
		detector:  detector,
		clock:     clock,
		random:    random,
		ids:       ids,
		publisher: publisher,
		logger:    logger,
		catalogs:  make(map[string]*shapes.Catalog),
	}
}

// CreateSession starts a new session with the given configuration
func (c *Controller) CreateSession(ctx context.Context, cfg model.SessionConfig) (*model.Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	gen, err := c.generator(cfg)
	if err != nil {
		return nil, err
	}

	best, err := c.storage.GetBestScore(ctx, cfg.Variant)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	session := &model.Session{
		ID:        model.SessionID(c.ids.NewID()),
		Config:    cfg,
		CreatedAt: now,
	}
	c.start(gen, session, best)

	if err := c.save(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.String("variant", string(cfg.Variant)),
		slog.Int("grid_size", cfg.GridSize),
		slog.Int("obstacles", session.ObstaclesPlaced),
	)
	c.publish(session, model.EventSessionStarted, model.BatchRefilledPayload{Batch: session.Batch})
	c.publishTerminal(session, model.SessionStatePlaying)

	return session, nil
}

// start puts a session into its initial playing state
func (c *Controller) start(gen *generator.Service, session *model.Session, best int) {
	cfg := session.Config

	session.State = model.SessionStatePlaying
	session.Grid = model.NewGrid(cfg.GridSize)
	session.NextPieceSeq = 1
	session.Rounds = 0
	session.PendingResolve = false
	session.ObstaclesCleared = 0
	session.ObstaclesPlaced = 0
	c.scoring.Reset(session, best)

	if cfg.ObstacleCount > 0 {
		placed := gen.PlaceObstacles(session.Grid, cfg.ObstacleCount)
		session.ObstaclesPlaced = len(placed)
	}

	c.deal(gen, session)
	c.detector.Evaluate(session)
	session.UpdatedAt = c.clock.Now()
}

// GetSession retrieves a session by ID
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// ListSessions returns the IDs of all stored sessions
func (c *Controller) ListSessions(ctx context.Context) ([]model.SessionID, error) {
	return c.storage.ListSessionIDs(ctx)
}

// DeleteSession removes a session
func (c *Controller) DeleteSession(ctx context.Context, id model.SessionID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.storage.GetSession(ctx, id); err != nil {
		return err
	}
	return c.storage.DeleteSession(ctx, id)
}

// BestScore returns the stored best score for a variant
func (c *Controller) BestScore(ctx context.Context, variant model.Variant) (int, error) {
	return c.storage.GetBestScore(ctx, variant)
}

// CanPlace reports whether a batch piece fits at origin
func (c *Controller) CanPlace(ctx context.Context, id model.SessionID, pieceID model.PieceID, origin model.Position) (bool, error) {
	session, piece, err := c.loadPiece(ctx, id, pieceID)
	if err != nil {
		return false, err
	}
	return fit.CanPlace(session.Grid, piece.Shape, origin), nil
}

// CanPlaceAnywhere reports whether a batch piece fits anywhere on the grid
func (c *Controller) CanPlaceAnywhere(ctx context.Context, id model.SessionID, pieceID model.PieceID) (bool, error) {
	session, piece, err := c.loadPiece(ctx, id, pieceID)
	if err != nil {
		return false, err
	}
	return fit.CanPlaceAnywhere(session.Grid, piece.Shape), nil
}

// IsGameOver reports whether no batch piece fits the current grid
func (c *Controller) IsGameOver(ctx context.Context, id model.SessionID) (bool, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return false, err
	}
	if session.State == model.SessionStateGameOver {
		return true, nil
	}
	return c.detector.IsGameOver(session.Grid, session.Batch), nil
}

// TryPlace commits a placement without resolving clears. The session then
// accepts no other placement until ResolveClears is called.
func (c *Controller) TryPlace(ctx context.Context, id model.SessionID, pieceID model.PieceID, origin model.Position) (model.PlacementResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.loadPlayable(ctx, id)
	if err != nil {
		return model.PlacementResult{}, err
	}

	result, err := c.place(session, pieceID, origin)
	if err != nil {
		return model.PlacementResult{}, err
	}

	if err := c.save(ctx, session); err != nil {
		return model.PlacementResult{}, err
	}
	return result, nil
}

// ResolveClears clears full lines after a placement, scores them, refills an
// exhausted batch and evaluates terminal states. With no placement pending it
// returns an empty result and changes nothing.
func (c *Controller) ResolveClears(ctx context.Context, id model.SessionID) (model.ClearResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return model.ClearResult{}, err
	}
	if !session.PendingResolve {
		return model.ClearResult{}, nil
	}

	result, _, err := c.resolve(ctx, session)
	if err != nil {
		return model.ClearResult{}, err
	}

	if err := c.save(ctx, session); err != nil {
		return model.ClearResult{}, err
	}
	return result, nil
}

// Place commits a placement and resolves it in one step
func (c *Controller) Place(ctx context.Context, id model.SessionID, pieceID model.PieceID, origin model.Position) (model.MoveResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.loadPlayable(ctx, id)
	if err != nil {
		return model.MoveResult{}, err
	}

	placed, err := c.place(session, pieceID, origin)
	if err != nil {
		return model.MoveResult{}, err
	}

	cleared, refilled, err := c.resolve(ctx, session)
	if err != nil {
		return model.MoveResult{}, err
	}

	if err := c.save(ctx, session); err != nil {
		return model.MoveResult{}, err
	}

	return model.MoveResult{
		Placement: placed,
		Clear:     cleared,
		Refilled:  refilled,
		State:     session.State,
		Score:     session.Score.Score,
	}, nil
}

// RefillBatch replaces the current batch with a freshly dealt one
func (c *Controller) RefillBatch(ctx context.Context, id model.SessionID) ([]model.Piece, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.loadPlayable(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.PendingResolve {
		return nil, model.ErrResolvePending
	}

	gen, err := c.generator(session.Config)
	if err != nil {
		return nil, err
	}

	c.deal(gen, session)
	prev := session.State
	c.detector.Evaluate(session)
	session.UpdatedAt = c.clock.Now()

	if err := c.save(ctx, session); err != nil {
		return nil, err
	}

	c.publish(session, model.EventBatchRefilled, model.BatchRefilledPayload{Batch: session.Batch})
	c.publishTerminal(session, prev)
	return session.Batch, nil
}

// ResetSession restarts a session in place with the same ID and config.
// The best score carries over.
func (c *Controller) ResetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	gen, err := c.generator(session.Config)
	if err != nil {
		return nil, err
	}

	best, err := c.storage.GetBestScore(ctx, session.Config.Variant)
	if err != nil {
		return nil, err
	}
	c.start(gen, session, max(best, session.Score.Best))

	if err := c.save(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session reset", slog.String("session_id", string(session.ID)))
	c.publish(session, model.EventSessionReset, model.BatchRefilledPayload{Batch: session.Batch})
	c.publishTerminal(session, model.SessionStatePlaying)
	return session, nil
}

// ActivateBooster spends coins on the score multiplier
func (c *Controller) ActivateBooster(ctx context.Context, id model.SessionID) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.loadPlayable(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.scoring.ActivateBooster(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = c.clock.Now()

	if err := c.save(ctx, session); err != nil {
		return nil, err
	}

	c.publish(session, model.EventBoosterActivated, model.BoosterActivatedPayload{
		ActiveUntil: session.Booster.ActiveUntil,
		CoinsLeft:   c.scoring.Coins(session),
	})
	return session, nil
}

// Booster returns the coin and multiplier status of a session
func (c *Controller) Booster(session *model.Session) BoosterStatus {
	return BoosterStatus{
		Coins:     c.scoring.Coins(session),
		Active:    c.scoring.BoosterActive(session),
		Remaining: c.scoring.BoosterRemaining(session),
	}
}

// place validates and commits one placement on a loaded session
func (c *Controller) place(session *model.Session, pieceID model.PieceID, origin model.Position) (model.PlacementResult, error) {
	if session.PendingResolve {
		return model.PlacementResult{}, model.ErrResolvePending
	}

	result, err := c.placement.TryPlace(session, pieceID, origin)
	if err != nil {
		return model.PlacementResult{}, err
	}

	result.Points = c.scoring.OnPlacement(session, len(result.Filled))
	session.PendingResolve = true
	session.Rounds++
	session.UpdatedAt = c.clock.Now()

	c.publish(session, model.EventPiecePlaced, model.PiecePlacedPayload{
		Placement: result,
		Score:     session.Score.Score,
	})
	return result, nil
}

// resolve runs the clear pass of a pending placement and everything that
// follows from it. The refilled batch is nil unless a new batch was dealt.
func (c *Controller) resolve(ctx context.Context, session *model.Session) (model.ClearResult, []model.Piece, error) {
	prevState := session.State

	result := c.placement.ResolveSession(session)
	result.Points, result.Multiplier = c.scoring.OnClear(session, result.LinesCleared)
	result.Combo = session.Score.Combo
	session.PendingResolve = false

	if result.LinesCleared > 0 {
		c.publish(session, model.EventLinesCleared, model.LinesClearedPayload{
			Clear: result,
			Score: session.Score.Score,
		})
	}

	var refilled []model.Piece
	if len(session.Batch) == 0 && !c.detector.IsWon(session) {
		gen, err := c.generator(session.Config)
		if err != nil {
			return model.ClearResult{}, nil, err
		}
		c.deal(gen, session)
		refilled = session.Batch
		c.publish(session, model.EventBatchRefilled, model.BatchRefilledPayload{Batch: refilled})
	}

	c.detector.Evaluate(session)
	session.UpdatedAt = c.clock.Now()

	// Score equals Best while this session holds the record, including
	// points from the placement half of the round
	if session.Score.Score > 0 && session.Score.Score == session.Score.Best {
		best, err := c.storage.SaveBestScore(ctx, session.Config.Variant, session.Score.Best)
		if err != nil {
			c.logger.Error("failed to save best score",
				slog.String("session_id", string(session.ID)),
				slog.String("error", err.Error()),
			)
			return model.ClearResult{}, nil, err
		}
		session.Score.Best = best
	}

	c.publishTerminal(session, prevState)
	return result, refilled, nil
}

// deal replaces the batch with a new one from the session's catalog
func (c *Controller) deal(gen *generator.Service, session *model.Session) {
	session.Batch = gen.GenerateBatch(session.Grid, generator.BatchRequest{
		Size:     session.Config.BatchSize,
		Smart:    session.Config.SmartGeneration,
		FirstSeq: session.NextPieceSeq,
	})
	session.NextPieceSeq += len(session.Batch)
}

// generator returns a piece generator for the session config, caching the
// catalog by name. Callers must hold mu.
func (c *Controller) generator(cfg model.SessionConfig) (*generator.Service, error) {
	catalog, ok := c.catalogs[cfg.Catalog]
	if !ok {
		var err error
		catalog, err = shapes.ByName(cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrInvalidConfig, err)
		}
		c.catalogs[cfg.Catalog] = catalog
	}
	return generator.New(catalog, cfg.Difficulty, c.random, c.logger), nil
}

func (c *Controller) loadPlayable(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", model.ErrSessionFinished, session.State)
	}
	return session, nil
}

func (c *Controller) loadPiece(ctx context.Context, id model.SessionID, pieceID model.PieceID) (*model.Session, model.Piece, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, model.Piece{}, err
	}
	piece, ok := session.FindPiece(pieceID)
	if !ok {
		return nil, model.Piece{}, fmt.Errorf("%w: %s", model.ErrPieceNotFound, pieceID)
	}
	return session, piece, nil
}

func (c *Controller) save(ctx context.Context, session *model.Session) error {
	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (c *Controller) publish(session *model.Session, eventType model.EventType, payload any) {
	if c.publisher == nil {
		return
	}
	c.publisher.Publish(model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		SessionID: session.ID,
		Payload:   payload,
	})
}

// publishTerminal emits game_over or won if the session just ended
func (c *Controller) publishTerminal(session *model.Session, prev model.SessionState) {
	if session.State == prev || !session.IsTerminal() {
		return
	}

	payload := model.SessionEndedPayload{Score: session.Score.Score, Best: session.Score.Best}
	switch session.State {
	case model.SessionStateGameOver:
		c.logger.Info("session over", slog.String("session_id", string(session.ID)), slog.Int("score", session.Score.Score))
		c.publish(session, model.EventGameOver, payload)
	case model.SessionStateWon:
		c.logger.Info("session won", slog.String("session_id", string(session.ID)), slog.Int("score", session.Score.Score))
		c.publish(session, model.EventWon, payload)
	}
}
