package games

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/validator"
	"github.com/joefazee/betpoints/models"
)

// Handler handles HTTP requests for games
type Handler struct {
	service Service
	logger  logger.Logger
}

func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// ListGames godoc
// @Summary      List games
// @Description  Games with the latest start time first
// @Tags         games
// @Produce      json
// @Param        status  query     string  false  "scheduled, live, final or cancelled"
// @Param        limit   query     int     false  "Page size (default 10, max 50)"
// @Param        cursor  query     string  false  "Id of the last game already seen"
// @Success      200     {object}  api.Response{data=[]GameResponse,meta=api.CursorMeta}
// @Failure      400     {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/games [get]
func (h *Handler) ListGames(c *gin.Context) {
	cursor, err := api.ParseCursor(c)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}
	limit := api.ParseLimit(c, DefaultListLimit, MaxListLimit)

	var status *models.GameStatus
	if raw := c.Query("status"); raw != "" {
		st := models.GameStatus(raw)
		switch st {
		case models.GameStatusScheduled, models.GameStatusLive, models.GameStatusFinal, models.GameStatusCancelled:
			status = &st
		default:
			api.HandleError(c, h.logger, models.ErrInvalidGameStatus)
			return
		}
	}

	games, err := h.service.ListGames(c.Request.Context(), status, limit, cursor)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.CursorResponse(c, "Games retrieved successfully", games, api.CursorMeta{
		Count:      len(games),
		Limit:      limit,
		NextCursor: api.NextCursor(gameIDs(games), limit),
	})
}

// GetGame godoc
// @Summary      Get a game
// @Tags         games
// @Produce      json
// @Param        id   path      string  true  "Game ID"
// @Success      200  {object}  api.Response{data=GameResponse}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/games/{id} [get]
func (h *Handler) GetGame(c *gin.Context) {
	id, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	game, err := h.service.GetGame(c.Request.Context(), id)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Game retrieved successfully", game)
}

// CreateGame godoc
// @Summary      Create a game
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateGameRequest  true  "Teams, odds and start time"
// @Success      201      {object}  api.Response{data=GameResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      403      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/games [post]
func (h *Handler) CreateGame(c *gin.Context) {
	actorID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}

	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	game, err := h.service.CreateGame(c.Request.Context(), actorID, &req)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.CreatedResponse(c, "Game created successfully", game)
}

// UpdateOdds godoc
// @Summary      Update a scheduled game's odds
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "Game ID"
// @Param        request  body      UpdateOddsRequest  true  "New odds"
// @Success      200      {object}  api.Response{data=GameResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      404      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/games/{id}/odds [patch]
func (h *Handler) UpdateOdds(c *gin.Context) {
	actorID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}
	id, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	var req UpdateOddsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	game, err := h.service.UpdateOdds(c.Request.Context(), actorID, id, &req)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Odds updated successfully", game)
}

// StartGame godoc
// @Summary      Start a game
// @Description  Closes betting and activates matched bets; unmatched p2p bets are refunded
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Game ID"
// @Success      200  {object}  api.Response{data=GameActionResponse}
// @Failure      400  {object}  api.Response{error=api.ErrorInfo}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/games/{id}/start [post]
func (h *Handler) StartGame(c *gin.Context) {
	actorID, id, ok := h.actorAndGame(c)
	if !ok {
		return
	}

	resp, err := h.service.StartGame(c.Request.Context(), actorID, id)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Game started", resp)
}

// SetResult godoc
// @Summary      Record a game's result
// @Description  Finalizes the game and settles every active bet on it
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string            true  "Game ID"
// @Param        request  body      SetResultRequest  true  "Outcome"
// @Success      200      {object}  api.Response{data=GameActionResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      404      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/games/{id}/result [post]
func (h *Handler) SetResult(c *gin.Context) {
	actorID, id, ok := h.actorAndGame(c)
	if !ok {
		return
	}

	var req SetResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	resp, err := h.service.SetResult(c.Request.Context(), actorID, id, req.Outcome)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Game result recorded", resp)
}

// CancelGame godoc
// @Summary      Cancel a game
// @Description  Refunds every unresolved bet on the game
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Game ID"
// @Success      200  {object}  api.Response{data=GameActionResponse}
// @Failure      400  {object}  api.Response{error=api.ErrorInfo}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/games/{id}/cancel [post]
func (h *Handler) CancelGame(c *gin.Context) {
	actorID, id, ok := h.actorAndGame(c)
	if !ok {
		return
	}

	resp, err := h.service.CancelGame(c.Request.Context(), actorID, id)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Game cancelled", resp)
}

func (h *Handler) actorAndGame(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	actorID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return uuid.Nil, uuid.Nil, false
	}
	return actorID, id, true
}

func gameIDs(games []GameResponse) []uuid.UUID {
	ids := make([]uuid.UUID, len(games))
	for i := range games {
		ids[i] = games[i].ID
	}
	return ids
}
