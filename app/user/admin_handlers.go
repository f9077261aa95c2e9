package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/validator"
)

type AdminHandler struct {
	service AdminService
	logger  logger.Logger
}

func NewAdminHandler(service AdminService, log logger.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: log}
}

// AssignRole godoc
// @Summary      Assign a role (Admin)
// @Description  Grants a role to a user. Takes effect on the user's next request.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "User ID"
// @Param        request  body      AssignRoleRequest  true  "Role name"
// @Success      200      {object}  api.Response{data=RoleAssignmentResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      403      {object}  api.Response{error=api.ErrorInfo}
// @Failure      404      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/users/{id}/roles [post]
func (h *AdminHandler) AssignRole(c *gin.Context) {
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

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	resp, err := h.service.AssignRole(c.Request.Context(), actorID, userID, req.Role)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Role assigned successfully", resp)
}
