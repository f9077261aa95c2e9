package social

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/validator"
)

// Handler handles HTTP requests for the social feed
type Handler struct {
	service Service
	logger  logger.Logger
}

func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// ListPosts godoc
// @Summary      List posts
// @Description  Reviews, newest first
// @Tags         social
// @Produce      json
// @Param        limit   query     int     false  "Page size (default 10, max 50)"
// @Param        cursor  query     string  false  "Id of the last post already seen"
// @Success      200     {object}  api.Response{data=[]PostResponse,meta=api.CursorMeta}
// @Failure      400     {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	cursor, err := api.ParseCursor(c)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}
	limit := api.ParseLimit(c, DefaultListLimit, MaxListLimit)

	posts, err := h.service.ListPosts(c.Request.Context(), limit, cursor)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	ids := make([]uuid.UUID, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	api.CursorResponse(c, "Posts retrieved successfully", posts, api.CursorMeta{
		Count:      len(posts),
		Limit:      limit,
		NextCursor: api.NextCursor(ids, limit),
	})
}

// GetPost godoc
// @Summary      Get a post
// @Tags         social
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  api.Response{data=PostResponse}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Post retrieved successfully", post)
}

// CreatePost godoc
// @Summary      Write a review
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreatePostRequest  true  "Review text and rating"
// @Success      201      {object}  api.Response{data=PostResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      401      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.CreatedResponse(c, "Post created successfully", post)
}

// ListComments godoc
// @Summary      List a post's comments
// @Description  Oldest first
// @Tags         social
// @Produce      json
// @Param        id      path      string  true   "Post ID"
// @Param        limit   query     int     false  "Page size (default 10, max 50)"
// @Param        cursor  query     string  false  "Id of the last comment already seen"
// @Success      200     {object}  api.Response{data=[]CommentResponse,meta=api.CursorMeta}
// @Failure      400     {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/posts/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	postID, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}
	cursor, err := api.ParseCursor(c)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}
	limit := api.ParseLimit(c, DefaultListLimit, MaxListLimit)

	comments, err := h.service.ListComments(c.Request.Context(), postID, limit, cursor)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	ids := make([]uuid.UUID, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	api.CursorResponse(c, "Comments retrieved successfully", comments, api.CursorMeta{
		Count:      len(comments),
		Limit:      limit,
		NextCursor: api.NextCursor(ids, limit),
	})
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Post ID"
// @Param        request  body      CreateCommentRequest  true  "Comment"
// @Success      201      {object}  api.Response{data=CommentResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      404      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/posts/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}
	postID, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), userID, postID, &req)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.CreatedResponse(c, "Comment created successfully", comment)
}

// DeleteComment godoc
// @Summary      Delete your comment
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Comment ID"
// @Success      200  {object}  api.Response
// @Failure      403  {object}  api.Response{error=api.ErrorInfo}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}
	id, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), userID, id); err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Comment deleted successfully", nil)
}

// ToggleLike godoc
// @Summary      Like or unlike a post or comment
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ToggleLikeRequest  true  "Item to toggle"
// @Success      200      {object}  api.Response{data=LikeResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      404      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/likes/toggle [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}

	var req ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	resp, err := h.service.ToggleLike(c.Request.Context(), userID, req.ItemID, req.ItemType)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Like toggled", resp)
}

// GetLikeStatus godoc
// @Summary      Which of these items has the caller liked
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      LikeStatusRequest  true  "Item ids (max 100)"
// @Success      200      {object}  api.Response{data=map[string]bool}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/likes/status [post]
func (h *Handler) GetLikeStatus(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}

	var req LikeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	status, err := h.service.GetLikeStatus(c.Request.Context(), userID, req.ItemIDs)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Like status retrieved successfully", status)
}
