package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counter names one denormalized count column.
type Counter int

const (
	PostLikes Counter = iota
	PostComments
	CommentLikes
)

func (c Counter) target() (table, column string, err error) {
	switch c {
	case PostLikes:
		return "posts", "like_count", nil
	case PostComments:
		return "posts", "comment_count", nil
	case CommentLikes:
		return "comments", "like_count", nil
	}
	return "", "", fmt.Errorf("unknown counter %d", c)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetAuthor(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("id", "display_name", "avatar_url").
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *repository) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns the newest posts first. cursor is the id of the last post already seen.
func (r *repository) ListPosts(ctx context.Context, limit int, cursor *uuid.UUID) ([]models.Post, error) {
	query := r.db.WithContext(ctx)
	if cursor != nil {
		query = query.Where("(created_at, id) < (SELECT created_at, id FROM posts WHERE id = ?)", *cursor)
	}

	var posts []models.Post
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *repository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *repository) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *repository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListComments returns a post's comments oldest first.
func (r *repository) ListComments(ctx context.Context, postID uuid.UUID, limit int, cursor *uuid.UUID) ([]models.Comment, error) {
	query := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if cursor != nil {
		query = query.Where("(created_at, id) > (SELECT created_at, id FROM comments WHERE id = ?)", *cursor)
	}

	var comments []models.Comment
	err := query.Order("created_at ASC, id ASC").Limit(limit).Find(&comments).Error
	return comments, err
}

func (r *repository) ItemExists(ctx context.Context, itemID uuid.UUID, itemType models.ItemType) (bool, error) {
	var model interface{}
	switch itemType {
	case models.ItemTypePost:
		model = &models.Post{}
	case models.ItemTypeComment:
		model = &models.Comment{}
	default:
		return false, models.ErrInvalidItemType
	}

	var count int64
	err := r.db.WithContext(ctx).Model(model).Where("id = ?", itemID).Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *repository) DeleteLike(ctx context.Context, userID, itemID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.Like{})
	return result.RowsAffected, result.Error
}

func (r *repository) DeleteItemLikes(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&models.Like{}).Error
}

func (r *repository) LikedItemIDs(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND item_id IN ?", userID, itemIDs).
		Pluck("item_id", &ids).Error
	return ids, err
}

func (r *repository) MarkProcessed(ctx context.Context, eventID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProcessedEvent{EventID: eventID})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// AdjustCounter applies delta to the counter, never letting it drop below zero. A
// missing row is not an error; the item may have been deleted since the event.
func (r *repository) AdjustCounter(ctx context.Context, counter Counter, id uuid.UUID, delta int) error {
	table, column, err := counter.target()
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Table(table).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("GREATEST("+column+" + ?, 0)", delta)).Error
}
