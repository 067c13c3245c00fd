package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/game"
)

// MaxAutoplayMoves is a safety limit for the Autoplay loop
const MaxAutoplayMoves = 1000

// Engine is the part of the game controller the bot drives
type Engine interface {
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	ResolveClears(ctx context.Context, id model.SessionID) (model.ClearResult, error)
	Place(ctx context.Context, id model.SessionID, pieceID model.PieceID, origin model.Position) (model.MoveResult, error)
}

// Ensure the controller satisfies Engine
var _ Engine = (*game.Controller)(nil)

// MoveRecord is one move made during autoplay
type MoveRecord struct {
	Move   Move
	Result model.MoveResult
}

// AutoplayResult summarises an autoplay run
type AutoplayResult struct {
	Moves []MoveRecord
	State model.SessionState
	Score int
}

// Service plays sessions with a named strategy
type Service struct {
	engine     Engine
	strategies map[string]Strategy
	logger     *slog.Logger
}

// NewService creates a new bot Service
func NewService(engine Engine, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		engine:     engine,
		strategies: strategies,
		logger:     logger.With(slog.String("component", "bot-service")),
	}
}

// Strategies returns the registered strategy names, sorted
func (s *Service) Strategies() []string {
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Autoplay places pieces until the session ends, the strategy finds no
// move, or maxMoves moves have been made. maxMoves <= 0 means the safety
// limit.
func (s *Service) Autoplay(ctx context.Context, id model.SessionID, strategyName string, maxMoves int) (*AutoplayResult, error) {
	strategy, ok := s.strategies[strategyName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, strategyName)
	}
	if maxMoves <= 0 || maxMoves > MaxAutoplayMoves {
		maxMoves = MaxAutoplayMoves
	}

	session, err := s.engine.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", model.ErrSessionFinished, session.State)
	}

	// Finish a half-done placement first
	if session.PendingResolve {
		if _, err := s.engine.ResolveClears(ctx, id); err != nil {
			return nil, err
		}
		if session, err = s.engine.GetSession(ctx, id); err != nil {
			return nil, err
		}
	}

	result := &AutoplayResult{State: session.State, Score: session.Score.Score}

	for len(result.Moves) < maxMoves && !session.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		move, ok := strategy.ChooseMove(session)
		if !ok {
			break
		}

		moveResult, err := s.engine.Place(ctx, id, move.PieceID, move.Origin)
		if err != nil {
			return result, err
		}
		result.Moves = append(result.Moves, MoveRecord{Move: move, Result: moveResult})
		result.State = moveResult.State
		result.Score = moveResult.Score

		if session, err = s.engine.GetSession(ctx, id); err != nil {
			return result, err
		}
	}

	s.logger.Info("autoplay finished",
		slog.String("session_id", string(id)),
		slog.String("strategy", strategyName),
		slog.Int("moves", len(result.Moves)),
		slog.Int("score", result.Score),
		slog.String("state", string(result.State)),
	)

	return result, nil
}
