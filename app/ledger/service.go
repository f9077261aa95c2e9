package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/metrics"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type service struct {
	db      *gorm.DB
	repo    Repository
	writer  Writer
	logger  logger.Logger
	metrics *metrics.Metrics
}

func NewService(db *gorm.DB, repo Repository, writer Writer, log logger.Logger, m *metrics.Metrics) Service {
	return &service{db: db, repo: repo, writer: writer, logger: log, metrics: m}
}

// GetBalance reports total, pending and available points. A negative available figure
// means the ledger and the open bets disagree; it is returned as computed and flagged.
func (s *service) GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResponse, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}

	pending, err := s.repo.PendingStake(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("pending stake: %w", err)
	}

	resp := &BalanceResponse{
		TotalPoints:     user.Balance,
		PendingBets:     pending,
		AvailablePoints: user.Balance - pending,
	}
	if resp.AvailablePoints < 0 {
		s.logger.Error(errors.New("available points negative"), map[string]interface{}{
			"user_id": userID,
			"balance": user.Balance,
			"pending": pending,
		})
		if s.metrics != nil {
			s.metrics.LedgerNegativeAvailable.Inc()
		}
	}
	return resp, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]TransactionResponse, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	txns, err := s.repo.ListTransactions(ctx, userID, limit, cursor)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return ToTransactionResponses(txns), nil
}

// Reconcile recomputes the user's balance from the ledger and rewrites the cached
// balance when the two differ.
func (s *service) Reconcile(ctx context.Context, actorID, userID uuid.UUID) (*ReconcileResponse, error) {
	var resp *ReconcileResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		user, err := repoTx.LockUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrRecordNotFound
			}
			return fmt.Errorf("lock user: %w", err)
		}

		total, err := repoTx.SumTransactions(ctx, userID)
		if err != nil {
			return fmt.Errorf("sum transactions: %w", err)
		}

		resp = &ReconcileResponse{
			UserID:        userID,
			CachedBalance: user.Balance,
			LedgerTotal:   total,
			Drift:         user.Balance - total,
		}
		if resp.Drift == 0 {
			return nil
		}

		if err := repoTx.SetBalance(ctx, userID, total); err != nil {
			return fmt.Errorf("set balance: %w", err)
		}
		entry := models.NewAuditLog(&actorID, models.AuditActionBalanceReconcile, models.AuditResourceUser, userID,
			map[string]interface{}{"balance": user.Balance},
			map[string]interface{}{"balance": total},
		)
		if err := repoTx.CreateAuditLog(ctx, entry); err != nil {
			return fmt.Errorf("create audit log: %w", err)
		}
		resp.Corrected = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Corrected {
		s.logger.Warn("ledger drift corrected", map[string]interface{}{
			"user_id":        userID,
			"cached_balance": resp.CachedBalance,
			"ledger_total":   resp.LedgerTotal,
		})
		if s.metrics != nil {
			s.metrics.LedgerDrift.Inc()
		}
	}
	return resp, nil
}

func (s *service) GrantBonus(ctx context.Context, actorID, userID uuid.UUID, req *BonusRequest) (*TransactionResponse, error) {
	var txn *models.PointsTransaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = s.writer.WithTx(tx).Credit(ctx, userID, req.Amount, models.TransactionTypeBonus, nil, req.Note)
		if err != nil {
			return err
		}

		entry := models.NewAuditLog(&actorID, models.AuditActionBonusGranted, models.AuditResourceUser, userID,
			map[string]interface{}{"balance": txn.BalanceBefore},
			map[string]interface{}{"balance": txn.BalanceAfter, "amount": req.Amount},
		)
		return s.repo.WithTx(tx).CreateAuditLog(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bonus granted", map[string]interface{}{
		"user_id":  userID,
		"actor_id": actorID,
		"amount":   req.Amount,
	})
	resp := ToTransactionResponse(txn)
	return &resp, nil
}
