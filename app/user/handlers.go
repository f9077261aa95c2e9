package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/validator"
	"github.com/joefazee/betpoints/models"
)

// AvatarFormField is the multipart field carrying the image.
const AvatarFormField = "avatar"

// Handler handles HTTP requests for user operations
type Handler struct {
	service Service
	logger  logger.Logger
}

// NewHandler creates a new user handler
func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a new account credited with the starting balance
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterUserRequest  true  "User registration details"
// @Success      201      {object}  api.Response{data=Response}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      409      {object}  api.Response{error=api.ErrorInfo}
// @Failure      500      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.CreatedResponse(c, "User registered successfully", user)
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticate a user and return an access token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "User credentials"
// @Success      200      {object}  api.Response{data=LoginResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      401      {object}  api.Response{error=api.ErrorInfo}
// @Failure      403      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// Logout godoc
// @Summary      Log out
// @Description  Revoke the token used for this request
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response
// @Failure      401  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	token, ok := TokenFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

// Me godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=Response}
// @Failure      401  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "User retrieved successfully", user)
}

// Lookup godoc
// @Summary      Find a player by email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Email address"
// @Success      200    {object}  api.Response{data=PublicProfile}
// @Failure      400    {object}  api.Response{error=api.ErrorInfo}
// @Failure      404    {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/lookup [get]
func (h *Handler) Lookup(c *gin.Context) {
	email := c.Query("email")

	v := validator.New()
	v.Check(validator.IsEmail(email), "email", "must be a valid email address")
	if !v.Valid() {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	profile, err := h.service.GetByEmail(c.Request.Context(), email)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "User retrieved successfully", profile)
}

// UpdateAvatar godoc
// @Summary      Upload an avatar
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "JPEG, PNG, GIF or WebP image"
// @Success      200     {object}  api.Response{data=Response}
// @Failure      400     {object}  api.Response{error=api.ErrorInfo}
// @Failure      503     {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/me/avatar [put]
func (h *Handler) UpdateAvatar(c *gin.Context) {
	userID, err := api.UserIDFromContext(c)
	if err != nil {
		api.UnauthorizedResponse(c)
		return
	}

	header, err := c.FormFile(AvatarFormField)
	if err != nil {
		api.BadRequestResponse(c, "avatar file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		api.HandleError(c, h.logger, models.ErrUnsupportedImage)
		return
	}
	defer file.Close()

	user, err := h.service.UpdateAvatar(c.Request.Context(), userID, file)
	if err != nil {
		api.HandleError(c, h.logger, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Avatar updated", user)
}
