package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemType names what a like points at.
type ItemType string

const (
	ItemTypePost    ItemType = "post"
	ItemTypeComment ItemType = "comment"
)

func (t ItemType) Valid() bool {
	return t == ItemTypePost || t == ItemTypeComment
}

// Like is unique per (user_id, item_id); the unique index is what keeps toggles from
// double-inserting.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_item" json:"user_id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_item;index" json:"item_id"`
	ItemType  ItemType  `gorm:"type:varchar(20);not null" json:"item_type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Like model
func (*Like) TableName() string {
	return "likes"
}

// BeforeCreate sets up the model before creation
func (l *Like) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ProcessedEvent records an engagement event the counter worker already applied.
type ProcessedEvent struct {
	EventID     uuid.UUID `gorm:"type:uuid;primary_key" json:"event_id"`
	ProcessedAt time.Time `gorm:"autoCreateTime" json:"processed_at"`
}

// TableName specifies the table name for ProcessedEvent model
func (*ProcessedEvent) TableName() string {
	return "processed_events"
}
