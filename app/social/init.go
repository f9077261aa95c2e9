package social

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/internal/deps"
)

const (
	RepoKey    = "social_repository"
	ServiceKey = "social_service"
)

func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	posts := r.Group("/posts")
	posts.GET("", handler.ListPosts)
	posts.GET("/:id", handler.GetPost)
	posts.GET("/:id/comments", handler.ListComments)
}

func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	r.POST("/posts", handler.CreatePost)
	r.POST("/posts/:id/comments", handler.CreateComment)
	r.DELETE("/comments/:id", handler.DeleteComment)
	r.POST("/likes/toggle", handler.ToggleLike)
	r.POST("/likes/status", handler.GetLikeStatus)
}

func InitRepositories(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)
	container.RegisterService(ServiceKey, NewService(container.DB, repo, container.Publisher,
		container.Sanitizer, container.Logger, container.Metrics))
}

func createHandler(container *deps.Container) *Handler {
	service := container.GetService(ServiceKey).(Service)
	return NewHandler(service, container.Logger)
}
