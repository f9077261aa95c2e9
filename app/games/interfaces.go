package games

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
)

// Repository defines data access for games
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, game *models.Game) error
	Update(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	LockGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
	List(ctx context.Context, status *models.GameStatus, limit int, cursor *uuid.UUID) ([]models.Game, error)

	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

// Service defines game management. Status changes fan out to the bets on the game.
type Service interface {
	CreateGame(ctx context.Context, actorID uuid.UUID, req *CreateGameRequest) (*GameResponse, error)
	ListGames(ctx context.Context, status *models.GameStatus, limit int, cursor *uuid.UUID) ([]GameResponse, error)
	GetGame(ctx context.Context, id uuid.UUID) (*GameResponse, error)
	UpdateOdds(ctx context.Context, actorID, id uuid.UUID, req *UpdateOddsRequest) (*GameResponse, error)

	StartGame(ctx context.Context, actorID, id uuid.UUID) (*GameActionResponse, error)
	SetResult(ctx context.Context, actorID, id uuid.UUID, outcome models.Selection) (*GameActionResponse, error)
	CancelGame(ctx context.Context, actorID, id uuid.UUID) (*GameActionResponse, error)
}
