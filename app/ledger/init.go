package ledger

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/internal/deps"
	"github.com/joefazee/betpoints/models"
)

const (
	RepoKey    = "ledger_repository"
	WriterKey  = "ledger_writer"
	ServiceKey = "ledger_service"
)

func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	points := r.Group("/points")
	points.GET("/balance", handler.GetBalance)
	points.GET("/history", handler.GetHistory)
}

func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	users := r.Group("/users")
	users.POST("/:id/bonus", api.Can(models.PermissionLedgerAdjust), handler.GrantBonus)
	users.POST("/:id/reconcile", api.Can(models.PermissionLedgerAdjust), handler.Reconcile)
}

// InitRepositories registers the ledger repository, the shared Writer and the service.
// Other modules fetch the Writer by WriterKey, so this runs first.
func InitRepositories(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	writer := NewWriter(repo)
	container.RegisterService(WriterKey, writer)

	container.RegisterService(ServiceKey, NewService(container.DB, repo, writer, container.Logger, container.Metrics))
}

func createHandler(container *deps.Container) *Handler {
	service := container.GetService(ServiceKey).(Service)
	return NewHandler(service, container.Logger)
}
