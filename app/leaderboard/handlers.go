package leaderboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/internal/logger"
)

type Handler struct {
	service Service
	logger  logger.Logger
}

func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// GetLeaderboard godoc
// @Summary      Points leaderboard
// @Description  Top players by balance with competition ranks, plus the caller's own rank
// @Tags         leaderboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=Response}
// @Failure      401  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/leaderboard [get]
func (h *Handler) GetLeaderboard(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}

	resp, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Leaderboard retrieved successfully", resp)
}
