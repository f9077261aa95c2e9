package ledger

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

func (m *MockRepository) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) LockUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) PendingStake(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ApplyDelta(ctx context.Context, userID uuid.UUID, delta int64) error {
	return m.Called(ctx, userID, delta).Error(0)
}

func (m *MockRepository) SetBalance(ctx context.Context, userID uuid.UUID, balance int64) error {
	return m.Called(ctx, userID, balance).Error(0)
}

func (m *MockRepository) CreateTransaction(ctx context.Context, txn *models.PointsTransaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockRepository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]models.PointsTransaction, error) {
	args := m.Called(ctx, userID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PointsTransaction), args.Error(1)
}

func (m *MockRepository) SumTransactions(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BalanceResponse), args.Error(1)
}

func (m *MockService) History(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]TransactionResponse, error) {
	args := m.Called(ctx, userID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TransactionResponse), args.Error(1)
}

func (m *MockService) Reconcile(ctx context.Context, actorID, userID uuid.UUID) (*ReconcileResponse, error) {
	args := m.Called(ctx, actorID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ReconcileResponse), args.Error(1)
}

func (m *MockService) GrantBonus(ctx context.Context, actorID, userID uuid.UUID, req *BonusRequest) (*TransactionResponse, error) {
	args := m.Called(ctx, actorID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TransactionResponse), args.Error(1)
}

// newMockDB opens gorm over sqlmock so service transactions can be asserted as
// BEGIN/COMMIT/ROLLBACK.
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
