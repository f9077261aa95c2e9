package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenBlacklist holds ids of access tokens revoked by logout until they expire.
type TokenBlacklist struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	TokenJTI  string    `gorm:"type:varchar(255);not null;unique;index:idx_token_blacklist_jti" json:"token_jti"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"type:timestamptz;not null;index:idx_token_blacklist_expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for TokenBlacklist model
func (*TokenBlacklist) TableName() string {
	return "token_blacklist"
}

// BeforeCreate sets up the model before creation
func (tb *TokenBlacklist) BeforeCreate(_ *gorm.DB) error {
	if tb.ID == uuid.Nil {
		tb.ID = uuid.New()
	}
	return nil
}

// IsExpired checks if the revoked token would have expired anyway
func (tb *TokenBlacklist) IsExpired() bool {
	return time.Now().After(tb.ExpiresAt)
}

// Validate performs validation on the token blacklist model
func (tb *TokenBlacklist) Validate() error {
	if tb.TokenJTI == "" {
		return ErrInvalidTokenJTI
	}
	if tb.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if tb.ExpiresAt.Before(time.Now()) {
		return ErrTokenAlreadyExpired
	}
	return nil
}

// CleanupExpiredTokens removes revocations whose tokens expired more than a day ago.
func CleanupExpiredTokens(db *gorm.DB) (int64, error) {
	cutoff := time.Now().Add(-24 * time.Hour)
	res := db.Where("expires_at < ?", cutoff).Delete(&TokenBlacklist{})
	return res.RowsAffected, res.Error
}
