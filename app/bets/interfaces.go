package bets

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
)

// Repository defines data access for bets
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateBet(ctx context.Context, bet *models.Bet) error
	UpdateBet(ctx context.Context, bet *models.Bet) error
	GetBetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error)
	LockBet(ctx context.Context, id uuid.UUID) (*models.Bet, error)
	FindByClientRequest(ctx context.Context, userID uuid.UUID, requestID string) (*models.Bet, error)

	GetUserBets(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]models.Bet, error)
	GetActiveBets(ctx context.Context, userID uuid.UUID) ([]models.Bet, error)
	GetOpenP2PBets(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]models.Bet, error)
	GetBetIDsByGame(ctx context.Context, gameID uuid.UUID, statuses []models.BetStatus) ([]uuid.UUID, error)
	GetStaleBetIDs(ctx context.Context, statuses []models.BetStatus, before time.Time, limit int) ([]uuid.UUID, error)

	// ShareLockGame reads the game FOR SHARE so a concurrent start or result waits
	// for the bet write to commit.
	ShareLockGame(ctx context.Context, gameID uuid.UUID) (*models.Game, error)

	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

// Service defines the player-facing bet operations
type Service interface {
	PlaceBet(ctx context.Context, userID uuid.UUID, req *PlaceBetRequest) (*BetResponse, error)
	JoinP2PBet(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error)
	CancelBet(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error)
	SettleBet(ctx context.Context, actorID *uuid.UUID, betID uuid.UUID, outcome models.Selection) (*BetResponse, error)

	GetBet(ctx context.Context, betID uuid.UUID) (*BetResponse, error)
	GetUserBets(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]BetResponse, error)
	GetActiveBets(ctx context.Context, userID uuid.UUID) ([]BetResponse, error)
	GetOpenP2PBets(ctx context.Context, userID uuid.UUID, limit int) ([]BetResponse, error)
}

// Settler moves every bet on a game when the game changes state, and closes bets
// that have been waiting too long. The games module and the sweeper drive it.
type Settler interface {
	ActivateGameBets(ctx context.Context, gameID uuid.UUID) (*BatchResult, error)
	SettleGame(ctx context.Context, actorID *uuid.UUID, gameID uuid.UUID, outcome models.Selection) (*BatchResult, error)
	VoidGameBets(ctx context.Context, gameID uuid.UUID) (*BatchResult, error)
	ExpireStaleBets(ctx context.Context, now time.Time) (*BatchResult, error)
}

// Manager is the full bet lifecycle: player operations plus game-driven transitions.
type Manager interface {
	Service
	Settler
}
