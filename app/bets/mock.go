package bets

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
	"github.com/stretchr/testify/mock"
)

// MockSettler is a testify mock of Settler for the modules that drive game-wide transitions.
type MockSettler struct {
	mock.Mock
}

func (m *MockSettler) ActivateGameBets(ctx context.Context, gameID uuid.UUID) (*BatchResult, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BatchResult), args.Error(1)
}

func (m *MockSettler) SettleGame(ctx context.Context, actorID *uuid.UUID, gameID uuid.UUID, outcome models.Selection) (*BatchResult, error) {
	args := m.Called(ctx, actorID, gameID, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BatchResult), args.Error(1)
}

func (m *MockSettler) VoidGameBets(ctx context.Context, gameID uuid.UUID) (*BatchResult, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BatchResult), args.Error(1)
}

func (m *MockSettler) ExpireStaleBets(ctx context.Context, now time.Time) (*BatchResult, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BatchResult), args.Error(1)
}
