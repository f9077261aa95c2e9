package leaderboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/joefazee/betpoints/internal/cache"
	"github.com/joefazee/betpoints/internal/logger"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) TopEntries(ctx context.Context, limit int) ([]Entry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entry), args.Error(1)
}

func (m *MockRepository) GetEntry(ctx context.Context, userID uuid.UUID) (*Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Entry), args.Error(1)
}

func (m *MockRepository) CountAbove(ctx context.Context, balance int64) (int64, error) {
	args := m.Called(ctx, balance)
	return args.Get(0).(int64), args.Error(1)
}

type LeaderboardServiceTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo *MockRepository
}

func (s *LeaderboardServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = new(MockRepository)
}

func TestLeaderboardService(t *testing.T) {
	suite.Run(t, new(LeaderboardServiceTestSuite))
}

func (s *LeaderboardServiceTestSuite) entries() []Entry {
	return []Entry{
		{UserID: uuid.New(), DisplayName: "Al", Balance: 100},
		{UserID: uuid.New(), DisplayName: "Bo", Balance: 100},
		{UserID: uuid.New(), DisplayName: "Cy", Balance: 90},
	}
}

func (s *LeaderboardServiceTestSuite) TestGet_RanksCaller() {
	entries := s.entries()
	caller := entries[2]
	s.repo.On("TopEntries", s.ctx, 50).Return(entries, nil)
	s.repo.On("GetEntry", s.ctx, caller.UserID).Return(&caller, nil)
	s.repo.On("CountAbove", s.ctx, int64(90)).Return(int64(2), nil)

	svc := NewService(s.repo, nil, nil, logger.NewNullLogger())
	resp, err := svc.Get(s.ctx, caller.UserID)

	s.Require().NoError(err)
	s.Equal("3rd", resp.UserRank)
	s.Equal(int64(90), resp.UserBalance)
	s.Len(resp.Leaderboard, 3)
	s.Equal(1, resp.Leaderboard[1].Rank)
}

func (s *LeaderboardServiceTestSuite) TestGet_UnknownCallerIsUnranked() {
	userID := uuid.New()
	s.repo.On("TopEntries", s.ctx, 50).Return(s.entries(), nil)
	s.repo.On("GetEntry", s.ctx, userID).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(s.repo, nil, nil, logger.NewNullLogger())
	resp, err := svc.Get(s.ctx, userID)

	s.Require().NoError(err)
	s.Equal(Unranked, resp.UserRank)
	s.Zero(resp.UserBalance)
}

func (s *LeaderboardServiceTestSuite) TestGet_SnapshotIsCached() {
	entries := s.entries()
	caller := entries[0]
	s.repo.On("TopEntries", s.ctx, 50).Return(entries, nil).Once()
	s.repo.On("GetEntry", s.ctx, caller.UserID).Return(&caller, nil)
	s.repo.On("CountAbove", s.ctx, int64(100)).Return(int64(0), nil)

	svc := NewService(s.repo, cache.NewMemoryCache[string](time.Minute), nil, logger.NewNullLogger())

	first, err := svc.Get(s.ctx, caller.UserID)
	s.Require().NoError(err)
	second, err := svc.Get(s.ctx, caller.UserID)
	s.Require().NoError(err)

	s.Equal(first.Leaderboard, second.Leaderboard)
	s.Equal("1st", second.UserRank)
	s.repo.AssertNumberOfCalls(s.T(), "TopEntries", 1)
}

func (s *LeaderboardServiceTestSuite) TestGet_CacheFailureFallsBackToDatabase() {
	entries := s.entries()
	caller := entries[0]
	c := new(cache.MockCache)
	c.On("Get", s.ctx, "leaderboard:top:50").Return("", errors.New("redis down"))
	c.On("Set", s.ctx, "leaderboard:top:50", mock.Anything, 30*time.Second).Return(errors.New("redis down"))
	s.repo.On("TopEntries", s.ctx, 50).Return(entries, nil)
	s.repo.On("GetEntry", s.ctx, caller.UserID).Return(&caller, nil)
	s.repo.On("CountAbove", s.ctx, int64(100)).Return(int64(0), nil)

	svc := NewService(s.repo, c, nil, logger.NewNullLogger())
	resp, err := svc.Get(s.ctx, caller.UserID)

	s.Require().NoError(err)
	s.Len(resp.Leaderboard, 3)
	c.AssertExpectations(s.T())
}

func (s *LeaderboardServiceTestSuite) TestGet_DatabaseError() {
	s.repo.On("TopEntries", s.ctx, 50).Return(nil, errors.New("connection refused"))

	svc := NewService(s.repo, nil, nil, logger.NewNullLogger())
	_, err := svc.Get(s.ctx, uuid.New())

	s.Error(err)
}
