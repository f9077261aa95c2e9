package bets

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) WithTx(_ *gorm.DB) Repository {
	return m
}

func (m *MockRepository) CreateBet(ctx context.Context, bet *models.Bet) error {
	return m.Called(ctx, bet).Error(0)
}

func (m *MockRepository) UpdateBet(ctx context.Context, bet *models.Bet) error {
	return m.Called(ctx, bet).Error(0)
}

func (m *MockRepository) GetBetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockRepository) LockBet(ctx context.Context, id uuid.UUID) (*models.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockRepository) FindByClientRequest(ctx context.Context, userID uuid.UUID, requestID string) (*models.Bet, error) {
	args := m.Called(ctx, userID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockRepository) GetUserBets(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]models.Bet, error) {
	args := m.Called(ctx, userID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bet), args.Error(1)
}

func (m *MockRepository) GetActiveBets(ctx context.Context, userID uuid.UUID) ([]models.Bet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bet), args.Error(1)
}

func (m *MockRepository) GetOpenP2PBets(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]models.Bet, error) {
	args := m.Called(ctx, excludeUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bet), args.Error(1)
}

func (m *MockRepository) GetBetIDsByGame(ctx context.Context, gameID uuid.UUID, statuses []models.BetStatus) ([]uuid.UUID, error) {
	args := m.Called(ctx, gameID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRepository) GetStaleBetIDs(ctx context.Context, statuses []models.BetStatus, before time.Time, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, statuses, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRepository) ShareLockGame(ctx context.Context, gameID uuid.UUID) (*models.Game, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) PlaceBet(ctx context.Context, userID uuid.UUID, req *PlaceBetRequest) (*BetResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BetResponse), args.Error(1)
}

func (m *MockService) JoinP2PBet(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error) {
	args := m.Called(ctx, userID, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BetResponse), args.Error(1)
}

func (m *MockService) CancelBet(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error) {
	args := m.Called(ctx, userID, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BetResponse), args.Error(1)
}

func (m *MockService) SettleBet(ctx context.Context, actorID *uuid.UUID, betID uuid.UUID, outcome models.Selection) (*BetResponse, error) {
	args := m.Called(ctx, actorID, betID, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BetResponse), args.Error(1)
}

func (m *MockService) GetBet(ctx context.Context, betID uuid.UUID) (*BetResponse, error) {
	args := m.Called(ctx, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BetResponse), args.Error(1)
}

func (m *MockService) GetUserBets(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]BetResponse, error) {
	args := m.Called(ctx, userID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BetResponse), args.Error(1)
}

func (m *MockService) GetActiveBets(ctx context.Context, userID uuid.UUID) ([]BetResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BetResponse), args.Error(1)
}

func (m *MockService) GetOpenP2PBets(ctx context.Context, userID uuid.UUID, limit int) ([]BetResponse, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BetResponse), args.Error(1)
}

// newMockDB opens gorm over sqlmock so each bet transaction shows up as BEGIN/COMMIT/ROLLBACK.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, sqlMock
}
