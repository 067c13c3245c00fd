package factory

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/bot"
	"github.com/mcoot/blockgame-go/internal/storage"
	"github.com/mcoot/blockgame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/blockgame-go/internal/storage/redis"
)

type IntegrationSuite struct {
	suite.Suite
	newStore func(t *testing.T) storage.Storage
	app      *TestApp
	ctx      context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, &IntegrationSuite{
		newStore: func(*testing.T) storage.Storage { return memory.New() },
	})
}

func TestIntegrationSuiteRedis(t *testing.T) {
	suite.Run(t, &IntegrationSuite{
		newStore: func(t *testing.T) storage.Storage {
			mini := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return redisstorage.NewWithClient(client, redisstorage.DefaultConfig())
		},
	})
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestAppWithStorage(s.newStore(s.T()))
	s.ctx = context.Background()
}

func (s *IntegrationSuite) create(v model.Variant) *model.Session {
	cfg, err := model.ConfigForVariant(v)
	s.Require().NoError(err)
	session, err := s.app.GameController.CreateSession(s.ctx, cfg)
	s.Require().NoError(err)
	return session
}

// Test: a full row built by hand clears, scores and raises the best score
func (s *IntegrationSuite) TestClassicRowClear() {
	// Empty random queue: every classic draw is the monomino
	session := s.create(model.VariantClassic)
	s.Equal(model.SessionID("id-1"), session.ID)

	total := 0
	for x := 0; x < 8; x++ {
		result, err := s.app.GameController.Place(s.ctx, session.ID, session.Batch[0].ID, model.Position{X: x, Y: 0})
		s.Require().NoError(err)
		total = result.Score

		session, err = s.app.GameController.GetSession(s.ctx, session.ID)
		s.Require().NoError(err)
	}

	// 8 cells at 10 points plus one line at 100, no combo in classic
	s.Equal(180, total)
	s.Equal(64, session.Grid.EmptyCount())
	s.Equal(1, session.Score.LinesCleared)
	// Opening batch plus two refills dealt p1 to p9
	s.Equal(10, session.NextPieceSeq)

	best, err := s.app.GameController.BestScore(s.ctx, model.VariantClassic)
	s.Require().NoError(err)
	s.Equal(180, best)

	// A new session of the same variant starts with the stored best
	next := s.create(model.VariantClassic)
	s.Equal(180, next.Score.Best)
	s.Zero(next.Score.Score)
}

// Test: both bots play identical monomino games with an empty random queue
func (s *IntegrationSuite) TestAutoplayClearsRows() {
	for _, strategy := range []string{bot.StrategyGreedy, bot.StrategyRandom} {
		s.Run(strategy, func() {
			session := s.create(model.VariantCombo)

			result, err := s.app.BotService.Autoplay(s.ctx, session.ID, strategy, 16)
			s.Require().NoError(err)

			s.Len(result.Moves, 16)
			s.Equal(model.SessionStatePlaying, result.State)
			// Two rows of eight: 160 cell points plus 100 per line
			s.Equal(360, result.Score)

			stored, err := s.app.GameController.GetSession(s.ctx, session.ID)
			s.Require().NoError(err)
			s.Equal(64, stored.Grid.EmptyCount())
			s.Equal(2, stored.Score.LinesCleared)
			s.Equal(16, stored.Rounds)
			s.Zero(stored.Score.Combo)
		})
	}
}

// Test: obstacle variant is won once every obstacle is cleared
func (s *IntegrationSuite) TestObstacleVariantWin() {
	// Five distinct obstacle cells along row 7, then monomino draws
	s.app.MockRandom.QueueIntn(56, 57, 58, 59, 60)
	session := s.create(model.VariantObstacle)
	s.Require().Equal(5, session.ObstaclesPlaced)
	for x := 0; x < 5; x++ {
		s.Require().Equal(model.CellObstacle, session.Grid.Cells[7][x])
	}

	var last model.MoveResult
	for x := 5; x < 8; x++ {
		var err error
		last, err = s.app.GameController.Place(s.ctx, session.ID, session.Batch[0].ID, model.Position{X: x, Y: 7})
		s.Require().NoError(err)
		session, err = s.app.GameController.GetSession(s.ctx, session.ID)
		s.Require().NoError(err)
	}

	s.Equal(model.SessionStateWon, last.State)
	s.Equal(5, last.Clear.ObstaclesCleared)
	s.Zero(session.ObstaclesRemaining())

	_, err := s.app.GameController.Place(s.ctx, session.ID, "p99", model.Position{})
	s.ErrorIs(err, model.ErrSessionFinished)
}

// Test: the booster doubles scoring for its duration on the mock clock
func (s *IntegrationSuite) TestBoosterWindow() {
	session := s.create(model.VariantBooster)

	_, err := s.app.GameController.ActivateBooster(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrInsufficientCoins)

	funded, err := s.app.Storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	funded.Score.Score = 5000
	s.Require().NoError(s.app.Storage.SaveSession(s.ctx, funded))

	session, err = s.app.GameController.ActivateBooster(s.ctx, session.ID)
	s.Require().NoError(err)
	s.True(s.app.GameController.Booster(session).Active)
	s.Zero(s.app.GameController.Booster(session).Coins)

	result, err := s.app.GameController.Place(s.ctx, session.ID, session.Batch[0].ID, model.Position{})
	s.Require().NoError(err)
	s.Equal(20, result.Placement.Points)

	s.app.MockClock.Advance(5*time.Minute + time.Second)
	session, err = s.app.GameController.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.False(s.app.GameController.Booster(session).Active)

	result, err = s.app.GameController.Place(s.ctx, session.ID, session.Batch[0].ID, model.Position{X: 1})
	s.Require().NoError(err)
	s.Equal(10, result.Placement.Points)
}
