package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/internal/validator"
	"github.com/joefazee/betpoints/models"
)

// BalanceResponse is the balance view a client shows before a wager.
type BalanceResponse struct {
	TotalPoints     int64 `json:"total_points"`
	PendingBets     int64 `json:"pending_bets"`
	AvailablePoints int64 `json:"available_points"`
}

type TransactionResponse struct {
	ID            uuid.UUID              `json:"id"`
	Amount        int64                  `json:"amount"`
	Type          models.TransactionType `json:"type"`
	RelatedBetID  *uuid.UUID             `json:"related_bet_id,omitempty"`
	BalanceBefore int64                  `json:"balance_before"`
	BalanceAfter  int64                  `json:"balance_after"`
	Description   string                 `json:"description,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

type ReconcileResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	CachedBalance int64     `json:"cached_balance"`
	LedgerTotal   int64     `json:"ledger_total"`
	Drift         int64     `json:"drift"`
	Corrected     bool      `json:"corrected"`
}

type BonusRequest struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

func (r *BonusRequest) Validate(v *validator.Validator) bool {
	v.Check(r.Amount > 0, "amount", "must be greater than zero")
	v.Check(validator.MaxRunes(r.Note, 255), "note", "must not be more than 255 characters")
	return v.Valid()
}

func ToTransactionResponse(t *models.PointsTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Amount:        t.Amount,
		Type:          t.Type,
		RelatedBetID:  t.RelatedBetID,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

func ToTransactionResponses(txns []models.PointsTransaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
