package games

import (
	"context"
	"testing"

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

func (m *MockRepository) Create(ctx context.Context, game *models.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, game *models.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockRepository) LockGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, status *models.GameStatus, limit int, cursor *uuid.UUID) ([]models.Game, error) {
	args := m.Called(ctx, status, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateGame(ctx context.Context, actorID uuid.UUID, req *CreateGameRequest) (*GameResponse, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameResponse), args.Error(1)
}

func (m *MockService) ListGames(ctx context.Context, status *models.GameStatus, limit int, cursor *uuid.UUID) ([]GameResponse, error) {
	args := m.Called(ctx, status, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]GameResponse), args.Error(1)
}

func (m *MockService) GetGame(ctx context.Context, id uuid.UUID) (*GameResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameResponse), args.Error(1)
}

func (m *MockService) UpdateOdds(ctx context.Context, actorID, id uuid.UUID, req *UpdateOddsRequest) (*GameResponse, error) {
	args := m.Called(ctx, actorID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameResponse), args.Error(1)
}

func (m *MockService) StartGame(ctx context.Context, actorID, id uuid.UUID) (*GameActionResponse, error) {
	args := m.Called(ctx, actorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameActionResponse), args.Error(1)
}

func (m *MockService) SetResult(ctx context.Context, actorID, id uuid.UUID, outcome models.Selection) (*GameActionResponse, error) {
	args := m.Called(ctx, actorID, id, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameActionResponse), args.Error(1)
}

func (m *MockService) CancelGame(ctx context.Context, actorID, id uuid.UUID) (*GameActionResponse, error) {
	args := m.Called(ctx, actorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameActionResponse), args.Error(1)
}

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
