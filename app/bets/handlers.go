package bets

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/validator"
)

// Handler handles HTTP requests for bets
type Handler struct {
	service Service
	logger  logger.Logger
}

func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// PlaceBet godoc
// @Summary      Place a bet
// @Description  Places a house or p2p bet on a scheduled game. The stake is reserved immediately. Resending the same client_request_id returns the original bet.
// @Tags         bets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      PlaceBetRequest  true  "Bet details"
// @Success      201      {object}  api.Response{data=BetResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      401      {object}  api.Response{error=api.ErrorInfo}
// @Failure      404      {object}  api.Response{error=api.ErrorInfo}
// @Failure      422      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/bets [post]
func (h *Handler) PlaceBet(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}

	var req PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	bet, err := h.service.PlaceBet(c.Request.Context(), userID, &req)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.CreatedResponse(c, "Bet placed successfully", bet)
}

// JoinBet godoc
// @Summary      Join a p2p bet
// @Description  Takes the opposite side of an open p2p bet at the odds snapshotted when it was placed
// @Tags         bets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bet ID"
// @Success      200  {object}  api.Response{data=BetResponse}
// @Failure      400  {object}  api.Response{error=api.ErrorInfo}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Failure      409  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/bets/{id}/join [post]
func (h *Handler) JoinBet(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}
	betID, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	bet, err := h.service.JoinP2PBet(c.Request.Context(), userID, betID)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Bet joined successfully", bet)
}

// CancelBet godoc
// @Summary      Cancel an open bet
// @Tags         bets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bet ID"
// @Success      200  {object}  api.Response{data=BetResponse}
// @Failure      403  {object}  api.Response{error=api.ErrorInfo}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Failure      409  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/bets/{id}/cancel [post]
func (h *Handler) CancelBet(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}
	betID, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	bet, err := h.service.CancelBet(c.Request.Context(), userID, betID)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Bet cancelled successfully", bet)
}

// GetBet godoc
// @Summary      Get a bet
// @Tags         bets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bet ID"
// @Success      200  {object}  api.Response{data=BetResponse}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/bets/{id} [get]
func (h *Handler) GetBet(c *gin.Context) {
	betID, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	bet, err := h.service.GetBet(c.Request.Context(), betID)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Bet retrieved successfully", bet)
}

// ListBets godoc
// @Summary      List my bets
// @Description  Bets where the current user is either bettor, newest first
// @Tags         bets
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int     false  "Page size (default 20, max 100)"
// @Param        cursor  query     string  false  "Id of the last bet already seen"
// @Success      200     {object}  api.Response{data=[]BetResponse,meta=api.CursorMeta}
// @Failure      400     {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/bets [get]
func (h *Handler) ListBets(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}

	cursor, err := api.ParseCursor(c)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}
	limit := api.ParseLimit(c, DefaultListLimit, MaxListLimit)

	bets, err := h.service.GetUserBets(c.Request.Context(), userID, limit, cursor)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.CursorResponse(c, "Bets retrieved successfully", bets, api.CursorMeta{
		Count:      len(bets),
		Limit:      limit,
		NextCursor: api.NextCursor(betIDs(bets), limit),
	})
}

// ListActiveBets godoc
// @Summary      List my pending bets
// @Tags         bets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=[]BetResponse}
// @Router       /api/v1/bets/active [get]
func (h *Handler) ListActiveBets(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}

	bets, err := h.service.GetActiveBets(c.Request.Context(), userID)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Active bets retrieved successfully", bets)
}

// ListOpenBets godoc
// @Summary      List joinable p2p bets
// @Tags         bets
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Page size (default 20, max 100)"
// @Success      200    {object}  api.Response{data=[]BetResponse}
// @Router       /api/v1/bets/open [get]
func (h *Handler) ListOpenBets(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}
	limit := api.ParseLimit(c, DefaultListLimit, MaxListLimit)

	bets, err := h.service.GetOpenP2PBets(c.Request.Context(), userID, limit)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Open bets retrieved successfully", bets)
}

// SettleBet godoc
// @Summary      Settle a single bet
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string            true  "Bet ID"
// @Param        request  body      SettleBetRequest  true  "Game outcome"
// @Success      200      {object}  api.Response{data=BetResponse}
// @Failure      403      {object}  api.Response{error=api.ErrorInfo}
// @Failure      404      {object}  api.Response{error=api.ErrorInfo}
// @Failure      409      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/bets/{id}/settle [post]
func (h *Handler) SettleBet(c *gin.Context) {
	actorID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}
	betID, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	var req SettleBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	bet, err := h.service.SettleBet(c.Request.Context(), &actorID, betID, req.Outcome)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Bet settled successfully", bet)
}

func betIDs(bets []BetResponse) []uuid.UUID {
	ids := make([]uuid.UUID, len(bets))
	for i := range bets {
		ids[i] = bets[i].ID
	}
	return ids
}
