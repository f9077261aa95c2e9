package social

import (
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/internal/validator"
	"github.com/joefazee/betpoints/models"
)

const (
	MaxReviewRunes     = 2000
	MaxCommentRunes    = 1000
	MaxLikeStatusItems = 100
)

type CreatePostRequest struct {
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

func (r *CreatePostRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.NotBlank(r.Review), "review", "must be provided")
	v.Check(validator.MaxRunes(r.Review, MaxReviewRunes), "review", "must not be more than 2000 characters")
	v.Check(r.Rating >= 1 && r.Rating <= 5, "rating", "must be between 1 and 5")
	return v.Valid()
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

func (r *CreateCommentRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.NotBlank(r.Content), "content", "must be provided")
	v.Check(validator.MaxRunes(r.Content, MaxCommentRunes), "content", "must not be more than 1000 characters")
	return v.Valid()
}

type ToggleLikeRequest struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemType models.ItemType `json:"item_type"`
}

func (r *ToggleLikeRequest) Validate(v *validator.Validator) bool {
	v.Check(r.ItemID != uuid.Nil, "item_id", "must be provided")
	v.Check(r.ItemType.Valid(), "item_type", "must be post or comment")
	return v.Valid()
}

type LikeStatusRequest struct {
	ItemIDs []uuid.UUID `json:"item_ids"`
}

func (r *LikeStatusRequest) Validate(v *validator.Validator) bool {
	v.Check(len(r.ItemIDs) > 0, "item_ids", "must contain at least one id")
	v.Check(len(r.ItemIDs) <= MaxLikeStatusItems, "item_ids", "must not contain more than 100 ids")
	return v.Valid()
}

type PostResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	Review       string    `json:"review"`
	Rating       int       `json:"rating"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	PostID     uuid.UUID `json:"post_id"`
	UserID     uuid.UUID `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	LikeCount  int64     `json:"like_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Like actions reported by ToggleLike.
const (
	ActionLiked   = "liked"
	ActionUnliked = "unliked"
)

type LikeResponse struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemType models.ItemType `json:"item_type"`
	Liked    bool            `json:"liked"`
	Action   string          `json:"action"`
}

func ToPostResponse(p *models.Post) PostResponse {
	return PostResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		AuthorName:   p.AuthorName,
		AuthorAvatar: p.AuthorAvatar,
		Review:       p.Review,
		Rating:       p.Rating,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
	}
}

func ToPostResponses(posts []models.Post) []PostResponse {
	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = ToPostResponse(&posts[i])
	}
	return resp
}

func ToCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		UserID:     c.UserID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		LikeCount:  c.LikeCount,
		CreatedAt:  c.CreatedAt,
	}
}

func ToCommentResponses(comments []models.Comment) []CommentResponse {
	resp := make([]CommentResponse, len(comments))
	for i := range comments {
		resp[i] = ToCommentResponse(&comments[i])
	}
	return resp
}
