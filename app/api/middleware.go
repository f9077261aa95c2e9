package api

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/metrics"
)

// Can requires a permission previously stored under "permissions" by the auth
// middleware.
func Can(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		permissionsValue, exists := c.Get("permissions")
		if !exists {
			ForbiddenResponse(c, "Access Denied: Permissions not found in context")
			c.Abort()
			return
		}

		permissions, ok := permissionsValue.([]string)
		if !ok {
			ForbiddenResponse(c, "Access Denied: Invalid permissions data in context")
			c.Abort()
			return
		}

		for _, p := range permissions {
			if p == permission {
				c.Next()
				return
			}
		}

		ForbiddenResponse(c, "Access Denied: You do not have the required permission")
		c.Abort()
	}
}

// TimeoutMiddleware puts a deadline on the request context. Handlers pass it down
// to gorm so slow queries are cancelled.
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestLogger logs one line per request and records request metrics.
func RequestLogger(log logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		if m != nil {
			m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
			m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())
		}

		props := map[string]interface{}{
			"method":      c.Request.Method,
			"route":       route,
			"status":      status,
			"duration_ms": elapsed.Milliseconds(),
			"client_ip":   c.ClientIP(),
		}
		if uid, ok := c.Get("userID"); ok {
			props["user_id"] = uid
		}
		if status >= 500 {
			log.Warn("request failed", props)
			return
		}
		log.Debug("request", props)
	}
}
