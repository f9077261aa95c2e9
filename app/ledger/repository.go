package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// LockUser reads the user row with FOR UPDATE. It only serializes anything inside a
// transaction.
func (r *repository) LockUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// PendingStake sums the stake of every bet the user is party to that is not final yet.
func (r *repository) PendingStake(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Bet{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("(bettor1_id = ? OR bettor2_id = ?) AND status IN ?", userID, userID, models.PendingBetStatuses).
		Scan(&total).Error
	return total, err
}

func (r *repository) ApplyDelta(ctx context.Context, userID uuid.UUID, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SetBalance(ctx context.Context, userID uuid.UUID, balance int64) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("balance", balance).Error
}

func (r *repository) CreateTransaction(ctx context.Context, txn *models.PointsTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// ListTransactions pages newest first. The cursor is the id of the last entry already
// returned; ties on created_at are broken by id.
func (r *repository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]models.PointsTransaction, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (SELECT created_at, id FROM points_transactions WHERE id = ?)", *cursor)
	}

	var txns []models.PointsTransaction
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&txns).Error
	return txns, err
}

func (r *repository) SumTransactions(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.PointsTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

func (r *repository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
