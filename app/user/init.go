package user

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/app/ledger"
	"github.com/joefazee/betpoints/app/media"
	"github.com/joefazee/betpoints/internal/deps"
	"github.com/joefazee/betpoints/models"
)

const (
	RepoKey         = "user_repository"
	ServiceKey      = "user_service"
	AdminServiceKey = "admin_service"
	AuthServiceKey  = "auth_service"
)

// MountPublic mounts registration and login.
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	users := r.Group("/users")
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
}

func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	users := r.Group("/users")
	users.GET("/me", handler.Me)
	users.PUT("/me/avatar", handler.UpdateAvatar)
	users.POST("/logout", handler.Logout)
	users.GET("/lookup", handler.Lookup)
}

func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := NewAdminHandler(container.GetService(AdminServiceKey).(AdminService), container.Logger)

	users := r.Group("/users")
	users.POST("/:id/roles", api.Can(models.PermissionUsersAssignRole), handler.AssignRole)
}

// InitRepositories registers the user repository and services. The ledger module
// must be initialised first for the starting balance, and media for avatars.
func InitRepositories(container *deps.Container, config *Config) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	authService := NewAuthService(repo, container.Cache, config.PermissionCacheTTL)
	container.RegisterService(AuthServiceKey, authService)

	writer := container.GetService(ledger.WriterKey).(ledger.Writer)
	container.RegisterService(ServiceKey, NewService(container.DB, repo, writer, container.TokenMaker,
		media.UploaderFrom(container), container.Cache, container.Sanitizer, config, container.Logger))

	container.RegisterService(AdminServiceKey, NewAdminService(container.DB, repo, authService, container.Logger))
}

// Authenticator returns the middleware guarding authenticated and admin routes.
func Authenticator(container *deps.Container) gin.HandlerFunc {
	return AuthMiddleware(container.TokenMaker, container.GetService(AuthServiceKey).(AuthService))
}

// Repo returns the registered repository, used by the token purge job.
func Repo(container *deps.Container) Repository {
	return container.GetRepository(RepoKey).(Repository)
}

func createHandler(container *deps.Container) *Handler {
	service := container.GetService(ServiceKey).(Service)
	return NewHandler(service, container.Logger)
}
