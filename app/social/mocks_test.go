package social

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/joefazee/betpoints/internal/events"
	"github.com/joefazee/betpoints/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) WithTx(_ *gorm.DB) Repository {
	return m
}

func (m *MockRepository) GetAuthor(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockRepository) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockRepository) ListPosts(ctx context.Context, limit int, cursor *uuid.UUID) ([]models.Post, error) {
	args := m.Called(ctx, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockRepository) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) ListComments(ctx context.Context, postID uuid.UUID, limit int, cursor *uuid.UUID) ([]models.Comment, error) {
	args := m.Called(ctx, postID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockRepository) ItemExists(ctx context.Context, itemID uuid.UUID, itemType models.ItemType) (bool, error) {
	args := m.Called(ctx, itemID, itemType)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return m.Called(ctx, like).Error(0)
}

func (m *MockRepository) DeleteLike(ctx context.Context, userID, itemID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) DeleteItemLikes(ctx context.Context, itemID uuid.UUID) error {
	return m.Called(ctx, itemID).Error(0)
}

func (m *MockRepository) LikedItemIDs(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRepository) MarkProcessed(ctx context.Context, eventID uuid.UUID) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) AdjustCounter(ctx context.Context, counter Counter, id uuid.UUID, delta int) error {
	return m.Called(ctx, counter, id, delta).Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) CreatePost(ctx context.Context, userID uuid.UUID, req *CreatePostRequest) (*PostResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PostResponse), args.Error(1)
}

func (m *MockService) GetPost(ctx context.Context, id uuid.UUID) (*PostResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PostResponse), args.Error(1)
}

func (m *MockService) ListPosts(ctx context.Context, limit int, cursor *uuid.UUID) ([]PostResponse, error) {
	args := m.Called(ctx, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PostResponse), args.Error(1)
}

func (m *MockService) CreateComment(ctx context.Context, userID, postID uuid.UUID, req *CreateCommentRequest) (*CommentResponse, error) {
	args := m.Called(ctx, userID, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CommentResponse), args.Error(1)
}

func (m *MockService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	return m.Called(ctx, userID, commentID).Error(0)
}

func (m *MockService) ListComments(ctx context.Context, postID uuid.UUID, limit int, cursor *uuid.UUID) ([]CommentResponse, error) {
	args := m.Called(ctx, postID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CommentResponse), args.Error(1)
}

func (m *MockService) ToggleLike(ctx context.Context, userID, itemID uuid.UUID, itemType models.ItemType) (*LikeResponse, error) {
	args := m.Called(ctx, userID, itemID, itemType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LikeResponse), args.Error(1)
}

func (m *MockService) GetLikeStatus(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, userID, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e events.EngagementEvent) error {
	return m.Called(ctx, e).Error(0)
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
