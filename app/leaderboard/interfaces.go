package leaderboard

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// TopEntries returns active users by balance, highest first.
	TopEntries(ctx context.Context, limit int) ([]Entry, error)
	GetEntry(ctx context.Context, userID uuid.UUID) (*Entry, error)
	// CountAbove counts active users holding more than balance.
	CountAbove(ctx context.Context, balance int64) (int64, error)
}

type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*Response, error)
}
