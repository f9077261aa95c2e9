package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType represents the type of points transaction
type TransactionType string

const (
	TransactionTypeBetPlaced      TransactionType = "bet_placed"
	TransactionTypeBetWon         TransactionType = "bet_won"
	TransactionTypeBetLost        TransactionType = "bet_lost"
	TransactionTypeBetRefund      TransactionType = "bet_refund"
	TransactionTypeBonus          TransactionType = "bonus"
	TransactionTypeInitialBalance TransactionType = "initial_balance"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeBetPlaced, TransactionTypeBetWon, TransactionTypeBetLost,
		TransactionTypeBetRefund, TransactionTypeBonus, TransactionTypeInitialBalance:
		return true
	}
	return false
}

// IsDebit reports whether entries of this type take points away.
func (t TransactionType) IsDebit() bool {
	return t == TransactionTypeBetPlaced || t == TransactionTypeBetLost
}

// PointsTransaction is an immutable ledger entry. A user's balance must equal the sum
// of the amounts of their entries.
type PointsTransaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_points_transactions_user" json:"user_id"`
	Amount        int64           `gorm:"type:bigint;not null" json:"amount"`
	Type          TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	RelatedBetID  *uuid.UUID      `gorm:"type:uuid" json:"related_bet_id,omitempty"`
	BalanceBefore int64           `gorm:"type:bigint;not null" json:"balance_before"`
	BalanceAfter  int64           `gorm:"type:bigint;not null" json:"balance_after"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index:idx_points_transactions_created_at" json:"created_at"`
}

// TableName specifies the table name for PointsTransaction model
func (*PointsTransaction) TableName() string {
	return "points_transactions"
}

// BeforeCreate sets up the model before creation
func (t *PointsTransaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsCredit checks if this is a credit transaction (positive amount)
func (t *PointsTransaction) IsCredit() bool {
	return t.Amount > 0
}

// Validate checks the entry is internally consistent.
func (t *PointsTransaction) Validate() error {
	if t.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if !t.Type.Valid() {
		return ErrInvalidTransactionType
	}
	if t.Amount == 0 || (t.Type.IsDebit() && t.Amount > 0) || (!t.Type.IsDebit() && t.Amount < 0) {
		return ErrInvalidTransactionAmount
	}
	if t.BalanceBefore+t.Amount != t.BalanceAfter {
		return ErrInvalidTransactionAmount
	}
	if t.BalanceAfter < 0 {
		return ErrNegativeBalance
	}
	return nil
}
