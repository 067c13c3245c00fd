package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blockgame-go/internal/dependencies/mocks"
	"github.com/mcoot/blockgame-go/internal/model"
)

type TrackerSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	tracker *Tracker
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerSuite))
}

func (s *TrackerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.tracker = New(s.clock)
}

func (s *TrackerSuite) session(variant model.Variant) *model.Session {
	cfg, err := model.ConfigForVariant(variant)
	s.Require().NoError(err)
	session := &model.Session{ID: "s1", Config: cfg}
	s.tracker.Reset(session, 0)
	return session
}

func (s *TrackerSuite) TestPlacementPoints() {
	session := s.session(model.VariantCombo)

	s.Equal(20, s.tracker.OnPlacement(session, 2))
	s.Equal(20, session.Score.Score)
	s.Equal(20, session.Score.Best)
}

func (s *TrackerSuite) TestFirstClearUsesIncrementedCombo() {
	session := s.session(model.VariantCombo)

	points, mult := s.tracker.OnClear(session, 1)

	s.Equal(100, points)
	s.Equal(1, mult)
	s.Equal(1, session.Score.Combo)
}

func (s *TrackerSuite) TestComboGrowsAndResets() {
	session := s.session(model.VariantCombo)

	s.tracker.OnClear(session, 1)
	points, mult := s.tracker.OnClear(session, 2)
	s.Equal(2, mult)
	s.Equal(400, points)
	s.Equal(2, session.Score.Combo)

	points, mult = s.tracker.OnClear(session, 0)
	s.Zero(points)
	s.Equal(1, mult)
	s.Equal(0, session.Score.Combo)
	s.Equal(500, session.Score.Score)
	s.Equal(3, session.Score.LinesCleared)
}

func (s *TrackerSuite) TestComboBeforeIncrement() {
	session := s.session(model.VariantCombo)
	session.Config.Combo = model.ComboConfig{Enabled: true, AppliesBeforeIncrement: true, BaseValue: 1}
	s.tracker.Reset(session, 0)

	points, mult := s.tracker.OnClear(session, 1)
	s.Equal(1, mult)
	s.Equal(100, points)
	s.Equal(2, session.Score.Combo)

	points, mult = s.tracker.OnClear(session, 1)
	s.Equal(2, mult)
	s.Equal(200, points)

	s.tracker.OnClear(session, 0)
	s.Equal(1, session.Score.Combo)
}

func (s *TrackerSuite) TestComboBeforeIncrementFromZeroBase() {
	session := s.session(model.VariantCombo)
	session.Config.Combo = model.ComboConfig{Enabled: true, AppliesBeforeIncrement: true}
	s.tracker.Reset(session, 0)

	points, mult := s.tracker.OnClear(session, 2)
	s.Equal(0, mult)
	s.Zero(points)
	s.Equal(1, session.Score.Combo)
	s.Equal(2, session.Score.LinesCleared)

	points, mult = s.tracker.OnClear(session, 1)
	s.Equal(1, mult)
	s.Equal(100, points)
}

func (s *TrackerSuite) TestComboDisabledIsFlat() {
	session := s.session(model.VariantClassic)

	for i := 0; i < 3; i++ {
		points, mult := s.tracker.OnClear(session, 2)
		s.Equal(1, mult)
		s.Equal(200, points)
	}
	s.Equal(3, session.Score.Combo)
	s.Equal(600, session.Score.Score)
}

func (s *TrackerSuite) TestBestOnlyRises() {
	session := s.session(model.VariantCombo)
	s.tracker.Reset(session, 500)

	s.tracker.OnPlacement(session, 4)
	s.Equal(500, session.Score.Best)

	s.tracker.OnClear(session, 5)
	s.Equal(540, session.Score.Score)
	s.Equal(540, session.Score.Best)
}

func (s *TrackerSuite) TestScoreNeverDecreases() {
	session := s.session(model.VariantCombo)
	last := 0
	for _, lines := range []int{0, 1, 0, 2, 3, 0, 0, 1} {
		s.tracker.OnPlacement(session, 3)
		s.tracker.OnClear(session, lines)
		s.GreaterOrEqual(session.Score.Score, last)
		last = session.Score.Score
	}
}

func (s *TrackerSuite) TestBoosterDisabled() {
	session := s.session(model.VariantCombo)
	session.Score.Score = 100000

	s.ErrorIs(s.tracker.ActivateBooster(session), model.ErrBoosterDisabled)
	s.Zero(s.tracker.Coins(session))
}

func (s *TrackerSuite) TestBoosterNeedsCoins() {
	session := s.session(model.VariantBooster)
	session.Score.Score = 4999

	s.Equal(4, s.tracker.Coins(session))
	s.ErrorIs(s.tracker.ActivateBooster(session), model.ErrInsufficientCoins)
	s.False(s.tracker.BoosterActive(session))
}

func (s *TrackerSuite) TestBoosterDoublesForDuration() {
	session := s.session(model.VariantBooster)
	session.Score.Score = 5000

	s.Require().NoError(s.tracker.ActivateBooster(session))
	s.Equal(0, s.tracker.Coins(session))
	s.True(s.tracker.BoosterActive(session))
	s.Equal(5*time.Minute, s.tracker.BoosterRemaining(session))

	s.Equal(40, s.tracker.OnPlacement(session, 2))
	points, _ := s.tracker.OnClear(session, 1)
	s.Equal(200, points)

	s.clock.Advance(5 * time.Minute)
	s.False(s.tracker.BoosterActive(session))
	s.Equal(20, s.tracker.OnPlacement(session, 2))
}

func (s *TrackerSuite) TestBoosterReactivationRestartsWindow() {
	session := s.session(model.VariantBooster)
	session.Score.Score = 10000

	s.Require().NoError(s.tracker.ActivateBooster(session))
	s.clock.Advance(3 * time.Minute)
	s.Require().NoError(s.tracker.ActivateBooster(session))

	s.Equal(10, session.Score.CoinsSpent)
	s.Equal(5*time.Minute, s.tracker.BoosterRemaining(session))
}
