package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockWriter is a testify mock of Writer for modules that move points.
type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WithTx(_ *gorm.DB) Writer {
	return m
}

func (m *MockWriter) Reserve(ctx context.Context, userID uuid.UUID, amount int64, betID uuid.UUID) (*models.PointsTransaction, error) {
	args := m.Called(ctx, userID, amount, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointsTransaction), args.Error(1)
}

func (m *MockWriter) Credit(ctx context.Context, userID uuid.UUID, amount int64, typ models.TransactionType, betID *uuid.UUID, description string) (*models.PointsTransaction, error) {
	args := m.Called(ctx, userID, amount, typ, betID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointsTransaction), args.Error(1)
}
