package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
)

// Repository defines data access for balances and the points ledger
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	LockUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	PendingStake(ctx context.Context, userID uuid.UUID) (int64, error)
	ApplyDelta(ctx context.Context, userID uuid.UUID, delta int64) error
	SetBalance(ctx context.Context, userID uuid.UUID, balance int64) error

	CreateTransaction(ctx context.Context, txn *models.PointsTransaction) error
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]models.PointsTransaction, error)
	SumTransactions(ctx context.Context, userID uuid.UUID) (int64, error)

	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

// Writer is the only component allowed to change User.Balance. Callers bind it to their
// own transaction with WithTx so the balance change and the business write commit together.
type Writer interface {
	WithTx(tx *gorm.DB) Writer
	Reserve(ctx context.Context, userID uuid.UUID, amount int64, betID uuid.UUID) (*models.PointsTransaction, error)
	Credit(ctx context.Context, userID uuid.UUID, amount int64, typ models.TransactionType, betID *uuid.UUID, description string) (*models.PointsTransaction, error)
}

// Service defines balance reads, history and admin corrections
type Service interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResponse, error)
	History(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]TransactionResponse, error)
	Reconcile(ctx context.Context, actorID, userID uuid.UUID) (*ReconcileResponse, error)
	GrantBonus(ctx context.Context, actorID, userID uuid.UUID, req *BonusRequest) (*TransactionResponse, error)
}
