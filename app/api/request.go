package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
)

// ParseLimit reads ?limit=, falling back to def and capping at max.
func ParseLimit(c *gin.Context, def, max int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// ParseCursor reads ?cursor= as the id of the last record already seen.
func ParseCursor(c *gin.Context) (*uuid.UUID, error) {
	raw := c.Query("cursor")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, models.ErrInvalidUUID
	}
	return &id, nil
}

// ParseUUIDParam reads a path parameter.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, models.ErrInvalidUUID
	}
	return id, nil
}

// UserIDFromContext returns the id the auth middleware stored.
func UserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	v, ok := c.Get("userID")
	if !ok {
		return uuid.Nil, models.ErrUnauthorized
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, models.ErrUnauthorized
	}
	return id, nil
}

// NextCursor returns the last id when the page is full.
func NextCursor(ids []uuid.UUID, limit int) string {
	if len(ids) < limit || len(ids) == 0 {
		return ""
	}
	return ids[len(ids)-1].String()
}
