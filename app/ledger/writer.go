package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
)

type writer struct {
	repo Repository
}

// NewWriter returns a Writer over repo. Use WithTx to bind it to an open transaction;
// the row lock taken on the user is only held for the life of that transaction.
func NewWriter(repo Repository) Writer {
	return &writer{repo: repo}
}

func (w *writer) WithTx(tx *gorm.DB) Writer {
	return &writer{repo: w.repo.WithTx(tx)}
}

// Reserve debits a stake for betID. The check uses available points (balance minus the
// stake already sitting in pending bets) and leaves nothing behind when it fails.
func (w *writer) Reserve(ctx context.Context, userID uuid.UUID, amount int64, betID uuid.UUID) (*models.PointsTransaction, error) {
	if amount <= 0 {
		return nil, models.ErrInvalidBetAmount
	}

	user, err := w.lock(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := w.repo.PendingStake(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("pending stake: %w", err)
	}
	if user.Balance-pending < amount {
		return nil, models.ErrInsufficientBalance
	}

	return w.apply(ctx, user, -amount, models.TransactionTypeBetPlaced, &betID, "")
}

// Credit adds amount to the user's balance under a credit type.
func (w *writer) Credit(ctx context.Context, userID uuid.UUID, amount int64, typ models.TransactionType, betID *uuid.UUID, description string) (*models.PointsTransaction, error) {
	if !typ.Valid() || typ.IsDebit() {
		return nil, models.ErrInvalidTransactionType
	}
	if amount <= 0 {
		return nil, models.ErrInvalidTransactionAmount
	}

	user, err := w.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	return w.apply(ctx, user, amount, typ, betID, description)
}

func (w *writer) lock(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := w.repo.LockUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("lock user %s: %w", userID, err)
	}
	return user, nil
}

func (w *writer) apply(ctx context.Context, user *models.User, delta int64, typ models.TransactionType, betID *uuid.UUID, description string) (*models.PointsTransaction, error) {
	txn := &models.PointsTransaction{
		UserID:        user.ID,
		Amount:        delta,
		Type:          typ,
		RelatedBetID:  betID,
		BalanceBefore: user.Balance,
		BalanceAfter:  user.Balance + delta,
		Description:   description,
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := w.repo.ApplyDelta(ctx, user.ID, delta); err != nil {
		return nil, fmt.Errorf("apply balance delta: %w", err)
	}
	if err := w.repo.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("record %s transaction: %w", typ, err)
	}

	user.Balance = txn.BalanceAfter
	return txn, nil
}
