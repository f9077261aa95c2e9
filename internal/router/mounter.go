package router

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/internal/deps"
)

// MountFunc represents a function that mounts routes for a module
type MountFunc func(*gin.RouterGroup, *deps.Container)

// Mounter builds the three route tiers under /api/v1. The auth middleware is injected
// by main so this package does not import the user module.
type Mounter struct {
	container *deps.Container
	basePath  string
	auth      gin.HandlerFunc
}

func NewMounter(container *deps.Container, basePath string, auth gin.HandlerFunc) *Mounter {
	return &Mounter{container: container, basePath: basePath, auth: auth}
}

// Public routes - no authentication required
func (m *Mounter) Public(engine *gin.Engine) *RouteGroup {
	return &RouteGroup{group: engine.Group(m.basePath), container: m.container}
}

// Authenticated routes - requires valid token
func (m *Mounter) Authenticated(engine *gin.Engine) *RouteGroup {
	group := engine.Group(m.basePath)
	group.Use(m.auth)
	return &RouteGroup{group: group, container: m.container}
}

// Admin routes live under /admin and require a token; each route adds its own
// permission check.
func (m *Mounter) Admin(engine *gin.Engine) *RouteGroup {
	group := engine.Group(m.basePath + "/admin")
	group.Use(m.auth)
	return &RouteGroup{group: group, container: m.container}
}

type RouteGroup struct {
	group     *gin.RouterGroup
	container *deps.Container
}

// Mount provides a fluent interface for mounting modules
func (rg *RouteGroup) Mount(mountFuncs ...MountFunc) *RouteGroup {
	for _, fn := range mountFuncs {
		fn(rg.group, rg.container)
	}
	return rg
}
