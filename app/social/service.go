package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/app/database"
	"github.com/joefazee/betpoints/internal/events"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/metrics"
	"github.com/joefazee/betpoints/internal/sanitizer"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 50
)

type service struct {
	db        *gorm.DB
	repo      Repository
	publisher events.Publisher
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
	metrics   *metrics.Metrics
}

func NewService(db *gorm.DB, repo Repository, publisher events.Publisher, s sanitizer.HTMLStripperer, log logger.Logger, m *metrics.Metrics) Service {
	return &service{
		db:        db,
		repo:      repo,
		publisher: publisher,
		sanitizer: s,
		logger:    log,
		metrics:   m,
	}
}

func (s *service) CreatePost(ctx context.Context, userID uuid.UUID, req *CreatePostRequest) (*PostResponse, error) {
	author, err := s.repo.GetAuthor(ctx, userID)
	if err != nil {
		return nil, notFound(err, "get author")
	}

	post := &models.Post{
		ID:           uuid.New(),
		UserID:       userID,
		AuthorName:   author.DisplayName,
		AuthorAvatar: author.AvatarURL,
		Review:       s.clean(req.Review),
		Rating:       req.Rating,
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	resp := ToPostResponse(post)
	return &resp, nil
}

func (s *service) GetPost(ctx context.Context, id uuid.UUID) (*PostResponse, error) {
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, notFound(err, "get post")
	}
	resp := ToPostResponse(post)
	return &resp, nil
}

func (s *service) ListPosts(ctx context.Context, limit int, cursor *uuid.UUID) ([]PostResponse, error) {
	posts, err := s.repo.ListPosts(ctx, clamp(limit), cursor)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return ToPostResponses(posts), nil
}

func (s *service) CreateComment(ctx context.Context, userID, postID uuid.UUID, req *CreateCommentRequest) (*CommentResponse, error) {
	author, err := s.repo.GetAuthor(ctx, userID)
	if err != nil {
		return nil, notFound(err, "get author")
	}

	comment := &models.Comment{
		ID:         uuid.New(),
		PostID:     postID,
		UserID:     userID,
		AuthorName: author.DisplayName,
		Content:    s.clean(req.Content),
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return nil, notFound(err, "get post")
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.publish(ctx, events.NewEngagementEvent(events.KindCommentAdded, userID, comment.ID, string(models.ItemTypeComment), &postID))

	resp := ToCommentResponse(comment)
	return &resp, nil
}

// DeleteComment removes the caller's own comment along with its likes.
func (s *service) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	var comment *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		var err error
		comment, err = repoTx.GetComment(ctx, commentID)
		if err != nil {
			return notFound(err, "get comment")
		}
		if comment.UserID != userID {
			return models.ErrForbidden
		}

		if err := repoTx.DeleteItemLikes(ctx, commentID); err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
		if err := repoTx.DeleteComment(ctx, commentID); err != nil {
			return notFound(err, "delete comment")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.NewEngagementEvent(events.KindCommentRemoved, userID, comment.ID, string(models.ItemTypeComment), &comment.PostID))
	return nil
}

func (s *service) ListComments(ctx context.Context, postID uuid.UUID, limit int, cursor *uuid.UUID) ([]CommentResponse, error) {
	comments, err := s.repo.ListComments(ctx, postID, clamp(limit), cursor)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return ToCommentResponses(comments), nil
}

// ToggleLike flips the caller's like on an item. Removing is tried first; an insert
// that loses a race against a concurrent like counts as already liked.
func (s *service) ToggleLike(ctx context.Context, userID, itemID uuid.UUID, itemType models.ItemType) (*LikeResponse, error) {
	if !itemType.Valid() {
		return nil, models.ErrInvalidItemType
	}
	resp := &LikeResponse{ItemID: itemID, ItemType: itemType}

	removed, err := s.repo.DeleteLike(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("delete like: %w", err)
	}
	if removed > 0 {
		resp.Action = ActionUnliked
		s.publish(ctx, events.NewEngagementEvent(events.KindLikeRemoved, userID, itemID, string(itemType), nil))
		return resp, nil
	}

	exists, err := s.repo.ItemExists(ctx, itemID, itemType)
	if err != nil {
		return nil, fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return nil, models.ErrRecordNotFound
	}

	resp.Liked = true
	resp.Action = ActionLiked
	err = s.repo.CreateLike(ctx, &models.Like{ID: uuid.New(), UserID: userID, ItemID: itemID, ItemType: itemType})
	switch {
	case database.IsUniqueViolation(err):
		return resp, nil
	case err != nil:
		return nil, fmt.Errorf("create like: %w", err)
	}

	s.publish(ctx, events.NewEngagementEvent(events.KindLikeAdded, userID, itemID, string(itemType), nil))
	return resp, nil
}

func (s *service) GetLikeStatus(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	status := make(map[uuid.UUID]bool, len(itemIDs))
	if len(itemIDs) == 0 {
		return status, nil
	}
	for _, id := range itemIDs {
		status[id] = false
	}

	liked, err := s.repo.LikedItemIDs(ctx, userID, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("liked items: %w", err)
	}
	for _, id := range liked {
		status[id] = true
	}
	return status, nil
}

// publish runs after the write committed. A lost event leaves a counter stale but
// never fails the request.
func (s *service) publish(ctx context.Context, e events.EngagementEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		if s.metrics != nil {
			s.metrics.EngagementPublishErrors.Inc()
		}
		s.logger.Warn("engagement event not published", map[string]interface{}{
			"event_id": e.EventID,
			"kind":     e.Kind,
			"item_id":  e.ItemID,
			"error":    err.Error(),
		})
	}
}

func (s *service) clean(text string) string {
	if s.sanitizer != nil {
		text = s.sanitizer.StripHTML(text)
	}
	return strings.TrimSpace(text)
}

func clamp(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
