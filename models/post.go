package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a user review shown in the social feed. LikeCount and CommentCount are
// maintained asynchronously by the engagement worker.
type Post struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AuthorName   string    `gorm:"type:varchar(100);not null" json:"author_name"`
	AuthorAvatar string    `gorm:"type:text" json:"author_avatar"`
	Review       string    `gorm:"type:text;not null" json:"review"`
	Rating       int       `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	LikeCount    int64     `gorm:"not null;default:0" json:"like_count"`
	CommentCount int64     `gorm:"not null;default:0" json:"comment_count"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Post model
func (*Post) TableName() string {
	return "posts"
}

// BeforeCreate sets up the model before creation
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Validate performs validation on the post model
func (p *Post) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if strings.TrimSpace(p.Review) == "" {
		return ErrEmptyContent
	}
	if p.Rating < 1 || p.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// Comment belongs to a post.
type Comment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	PostID     uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	AuthorName string    `gorm:"type:varchar(100);not null" json:"author_name"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	LikeCount  int64     `gorm:"not null;default:0" json:"like_count"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Comment model
func (*Comment) TableName() string {
	return "comments"
}

// BeforeCreate sets up the model before creation
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Validate performs validation on the comment model
func (c *Comment) Validate() error {
	if c.PostID == uuid.Nil || c.UserID == uuid.Nil {
		return ErrInvalidUUID
	}
	if strings.TrimSpace(c.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}
