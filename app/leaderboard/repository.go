package leaderboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) active() *gorm.DB {
	return r.db.Model(&models.User{}).Where("is_active IS NOT FALSE")
}

func (r *repository) TopEntries(ctx context.Context, limit int) ([]Entry, error) {
	var entries []Entry
	err := r.active().WithContext(ctx).
		Select("id AS user_id, display_name, avatar_url, balance").
		Order("balance DESC, LOWER(display_name), id").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

func (r *repository) GetEntry(ctx context.Context, userID uuid.UUID) (*Entry, error) {
	var entry Entry
	result := r.active().WithContext(ctx).
		Select("id AS user_id, display_name, avatar_url, balance").
		Where("id = ?", userID).
		Limit(1).
		Scan(&entry)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &entry, nil
}

func (r *repository) CountAbove(ctx context.Context, balance int64) (int64, error) {
	var count int64
	err := r.active().WithContext(ctx).Where("balance > ?", balance).Count(&count).Error
	return count, err
}
