package deps

import (
	"github.com/joefazee/betpoints/internal/cache"
	"github.com/joefazee/betpoints/internal/events"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/metrics"
	"github.com/joefazee/betpoints/internal/sanitizer"
	"github.com/joefazee/betpoints/internal/security"
	"gorm.io/gorm"
)

// Container holds all shared dependencies
type Container struct {
	DB         *gorm.DB
	TokenMaker security.Maker
	Sanitizer  sanitizer.HTMLStripperer
	Logger     logger.Logger
	Cache      cache.Cache[string]
	Metrics    *metrics.Metrics
	Publisher  events.Publisher

	// keyed by module so feature packages can find each other without import cycles
	repositories map[string]interface{}
	services     map[string]interface{}
}

func NewContainer(db *gorm.DB, tokenMaker security.Maker, sanitizer sanitizer.HTMLStripperer, logger logger.Logger, cache cache.Cache[string]) *Container {
	return &Container{
		DB:           db,
		TokenMaker:   tokenMaker,
		Sanitizer:    sanitizer,
		Logger:       logger,
		Cache:        cache,
		repositories: make(map[string]interface{}),
		services:     make(map[string]interface{}),
	}
}

// WithMetrics sets the collectors and returns c.
func (c *Container) WithMetrics(m *metrics.Metrics) *Container {
	c.Metrics = m
	return c
}

// WithPublisher sets the engagement event publisher and returns c.
func (c *Container) WithPublisher(p events.Publisher) *Container {
	c.Publisher = p
	return c
}

func (c *Container) RegisterRepository(key string, repo interface{}) {
	c.repositories[key] = repo
}

func (c *Container) GetRepository(key string) interface{} {
	return c.repositories[key]
}

func (c *Container) RegisterService(key string, service interface{}) {
	c.services[key] = service
}

func (c *Container) GetService(key string) interface{} {
	return c.services[key]
}
