package social

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/internal/events"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
)

// Repository defines data access for posts, comments and likes
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetAuthor(ctx context.Context, userID uuid.UUID) (*models.User, error)

	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, limit int, cursor *uuid.UUID) ([]models.Post, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
	ListComments(ctx context.Context, postID uuid.UUID, limit int, cursor *uuid.UUID) ([]models.Comment, error)

	ItemExists(ctx context.Context, itemID uuid.UUID, itemType models.ItemType) (bool, error)
	CreateLike(ctx context.Context, like *models.Like) error
	// DeleteLike returns the number of rows removed, 0 when the user had not liked the item.
	DeleteLike(ctx context.Context, userID, itemID uuid.UUID) (int64, error)
	DeleteItemLikes(ctx context.Context, itemID uuid.UUID) error
	LikedItemIDs(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) ([]uuid.UUID, error)

	// MarkProcessed records eventID and reports false when it was already there.
	MarkProcessed(ctx context.Context, eventID uuid.UUID) (bool, error)
	AdjustCounter(ctx context.Context, counter Counter, id uuid.UUID, delta int) error
}

// Service defines the social feed operations
type Service interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req *CreatePostRequest) (*PostResponse, error)
	GetPost(ctx context.Context, id uuid.UUID) (*PostResponse, error)
	ListPosts(ctx context.Context, limit int, cursor *uuid.UUID) ([]PostResponse, error)

	CreateComment(ctx context.Context, userID, postID uuid.UUID, req *CreateCommentRequest) (*CommentResponse, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
	ListComments(ctx context.Context, postID uuid.UUID, limit int, cursor *uuid.UUID) ([]CommentResponse, error)

	ToggleLike(ctx context.Context, userID, itemID uuid.UUID, itemType models.ItemType) (*LikeResponse, error)
	GetLikeStatus(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// Processor applies engagement events to the denormalized counters.
type Processor interface {
	Handle(ctx context.Context, e events.EngagementEvent) error
}
