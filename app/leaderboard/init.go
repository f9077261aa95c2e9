package leaderboard

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/internal/deps"
)

const (
	RepoKey    = "leaderboard_repository"
	ServiceKey = "leaderboard_service"
)

func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := NewHandler(container.GetService(ServiceKey).(Service), container.Logger)
	r.GET("/leaderboard", handler.GetLeaderboard)
}

func InitRepositories(container *deps.Container, config *Config) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)
	container.RegisterService(ServiceKey, NewService(repo, container.Cache, config, container.Logger))
}
