package ledger

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/validator"
)

// Handler handles HTTP requests for points balances and history
type Handler struct {
	service Service
	logger  logger.Logger
}

func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// GetBalance godoc
// @Summary      Get points balance
// @Description  Total, pending and available points for the current user
// @Tags         points
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=BalanceResponse}
// @Failure      401  {object}  api.Response{error=api.ErrorInfo}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/points/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}

	balance, err := h.service.GetBalance(c.Request.Context(), userID)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Balance retrieved successfully", balance)
}

// GetHistory godoc
// @Summary      Points history
// @Description  Ledger entries for the current user, newest first
// @Tags         points
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int     false  "Page size (default 20, max 100)"
// @Param        cursor  query     string  false  "Id of the last entry already seen"
// @Success      200     {object}  api.Response{data=[]TransactionResponse,meta=api.CursorMeta}
// @Failure      400     {object}  api.Response{error=api.ErrorInfo}
// @Failure      401     {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/points/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
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
	limit := api.ParseLimit(c, DefaultHistoryLimit, MaxHistoryLimit)

	txns, err := h.service.History(c.Request.Context(), userID, limit, cursor)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.CursorResponse(c, "History retrieved successfully", txns, api.CursorMeta{
		Count:      len(txns),
		Limit:      limit,
		NextCursor: api.NextCursor(transactionIDs(txns), limit),
	})
}

// GrantBonus godoc
// @Summary      Grant bonus points
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string        true  "User ID"
// @Param        request  body      BonusRequest  true  "Bonus amount"
// @Success      201      {object}  api.Response{data=TransactionResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      403      {object}  api.Response{error=api.ErrorInfo}
// @Failure      404      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/users/{id}/bonus [post]
func (h *Handler) GrantBonus(c *gin.Context) {
	actorID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}
	userID, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	var req BonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	txn, err := h.service.GrantBonus(c.Request.Context(), actorID, userID, &req)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.CreatedResponse(c, "Bonus granted successfully", txn)
}

// Reconcile godoc
// @Summary      Reconcile a user's balance with the ledger
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  api.Response{data=ReconcileResponse}
// @Failure      403  {object}  api.Response{error=api.ErrorInfo}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/users/{id}/reconcile [post]
func (h *Handler) Reconcile(c *gin.Context) {
	actorID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}
	userID, err := api.ParseUUIDParam(c, "id")
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	resp, err := h.service.Reconcile(c.Request.Context(), actorID, userID)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Balance reconciled", resp)
}

func transactionIDs(txns []TransactionResponse) []uuid.UUID {
	ids := make([]uuid.UUID, len(txns))
	for i := range txns {
		ids[i] = txns[i].ID
	}
	return ids
}
