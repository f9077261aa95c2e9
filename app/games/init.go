package games

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/app/bets"
	"github.com/joefazee/betpoints/internal/deps"
	"github.com/joefazee/betpoints/models"
)

const (
	RepoKey    = "games_repository"
	ServiceKey = "games_service"
)

func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	games := r.Group("/games")
	games.GET("", handler.ListGames)
	games.GET("/:id", handler.GetGame)
}

func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	games := r.Group("/games", api.Can(models.PermissionGamesManage))
	games.POST("", handler.CreateGame)
	games.PATCH("/:id/odds", handler.UpdateOdds)
	games.POST("/:id/start", handler.StartGame)
	games.POST("/:id/result", handler.SetResult)
	games.POST("/:id/cancel", handler.CancelGame)
}

// InitRepositories registers the games repository and service. The bets module must
// be initialised first; games drive its Settler.
func InitRepositories(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	settler := container.GetService(bets.SettlerKey).(bets.Settler)
	container.RegisterService(ServiceKey, NewService(container.DB, repo, settler, container.Sanitizer, container.Logger))
}

func createHandler(container *deps.Container) *Handler {
	service := container.GetService(ServiceKey).(Service)
	return NewHandler(service, container.Logger)
}
