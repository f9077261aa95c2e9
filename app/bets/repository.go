package bets

import (
	"context"
	"time"

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

func (r *repository) CreateBet(ctx context.Context, bet *models.Bet) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(bet).Error
}

func (r *repository) UpdateBet(ctx context.Context, bet *models.Bet) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(bet).Error
}

func (r *repository) GetBetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error) {
	var bet models.Bet
	if err := r.db.WithContext(ctx).Preload("Game").First(&bet, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bet, nil
}

func (r *repository) LockBet(ctx context.Context, id uuid.UUID) (*models.Bet, error) {
	var bet models.Bet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&bet, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

func (r *repository) FindByClientRequest(ctx context.Context, userID uuid.UUID, requestID string) (*models.Bet, error) {
	var bet models.Bet
	err := r.db.WithContext(ctx).
		Preload("Game").
		Where("bettor1_id = ? AND client_request_id = ?", userID, requestID).
		First(&bet).Error
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

// GetUserBets returns bets where the user is either bettor, newest first.
func (r *repository) GetUserBets(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]models.Bet, error) {
	query := r.db.WithContext(ctx).
		Preload("Game").
		Where("(bettor1_id = ? OR bettor2_id = ?)", userID, userID)
	if cursor != nil {
		query = query.Where("(created_at, id) < (SELECT created_at, id FROM bets WHERE id = ?)", *cursor)
	}

	var bets []models.Bet
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&bets).Error
	return bets, err
}

func (r *repository) GetActiveBets(ctx context.Context, userID uuid.UUID) ([]models.Bet, error) {
	var bets []models.Bet
	err := r.db.WithContext(ctx).
		Preload("Game").
		Where("(bettor1_id = ? OR bettor2_id = ?) AND status IN ?", userID, userID, models.PendingBetStatuses).
		Order("created_at DESC").
		Find(&bets).Error
	return bets, err
}

func (r *repository) GetOpenP2PBets(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]models.Bet, error) {
	var bets []models.Bet
	err := r.db.WithContext(ctx).
		Preload("Game").
		Where("bet_mode = ? AND status = ? AND bettor1_id <> ?", models.BetModeP2P, models.BetStatusOpen, excludeUserID).
		Order("created_at DESC").
		Limit(limit).
		Find(&bets).Error
	return bets, err
}

func (r *repository) GetBetIDsByGame(ctx context.Context, gameID uuid.UUID, statuses []models.BetStatus) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Bet{}).
		Where("game_id = ? AND status IN ?", gameID, statuses).
		Order("created_at").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) GetStaleBetIDs(ctx context.Context, statuses []models.BetStatus, before time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Bet{}).
		Where("status IN ? AND created_at < ?", statuses, before).
		Order("created_at").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) ShareLockGame(ctx context.Context, gameID uuid.UUID) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "SHARE"}).
		First(&game, "id = ?", gameID).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *repository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
