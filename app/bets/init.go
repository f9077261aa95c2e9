package bets

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/app/ledger"
	"github.com/joefazee/betpoints/internal/deps"
	"github.com/joefazee/betpoints/models"
)

const (
	RepoKey    = "bets_repository"
	ServiceKey = "bets_service"
	SettlerKey = "bets_settler"
)

func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	bets := r.Group("/bets")
	bets.POST("", handler.PlaceBet)
	bets.GET("", handler.ListBets)
	bets.GET("/active", handler.ListActiveBets)
	bets.GET("/open", handler.ListOpenBets)
	bets.GET("/:id", handler.GetBet)
	bets.POST("/:id/join", handler.JoinBet)
	bets.POST("/:id/cancel", handler.CancelBet)
}

func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	bets := r.Group("/bets")
	bets.POST("/:id/settle", api.Can(models.PermissionBetsSettle), handler.SettleBet)
}

// InitRepositories registers the bet repository and the lifecycle service under both
// ServiceKey and SettlerKey. The ledger module must be initialised first.
func InitRepositories(container *deps.Container, config *Config) {
	if config == nil {
		config = GetDefaultConfig()
	}

	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	writer := container.GetService(ledger.WriterKey).(ledger.Writer)
	manager := NewService(container.DB, repo, writer, config, container.Logger, container.Metrics)
	container.RegisterService(ServiceKey, manager)
	container.RegisterService(SettlerKey, manager)
}

func createHandler(container *deps.Container) *Handler {
	service := container.GetService(ServiceKey).(Service)
	return NewHandler(service, container.Logger)
}
